package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pickemhq/pickem/internal/domain/team"
	"github.com/pickemhq/pickem/internal/domain/user"
	idgen "github.com/pickemhq/pickem/internal/platform/id"
	"github.com/pickemhq/pickem/internal/platform/logging"
)

const teamSearchLimit = 25

// TeamService maintains the team catalog spreads reference.
type TeamService struct {
	teamRepo team.Repository
	idGen    idgen.Generator
	logger   *logging.Logger
}

func NewTeamService(teamRepo team.Repository, idGen idgen.Generator, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo: teamRepo,
		idGen:    idGen,
		logger:   logger,
	}
}

// SearchTeams matches teams by name fragment, case-insensitively.
func (s *TeamService) SearchTeams(ctx context.Context, p user.Principal, query string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.SearchTeams")
	defer span.End()

	if p.UserID == "" {
		return nil, ErrNotAuthenticated
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.SearchByName(ctx, query, teamSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search teams: %w", err)
	}

	return teams, nil
}

// CreateTeam adds a team to the catalog. Site-admin only.
func (s *TeamService) CreateTeam(ctx context.Context, p user.Principal, name, logoURL string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.CreateTeam")
	defer span.End()

	if p.UserID == "" {
		return team.Team{}, ErrNotAuthenticated
	}
	if !p.SiteAdmin {
		return team.Team{}, ErrNotAuthorized
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	t := team.Team{
		ID:      id,
		Name:    strings.TrimSpace(name),
		LogoURL: strings.TrimSpace(logoURL),
	}
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Create(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created",
		"team_id", t.ID,
		"name", t.Name,
	)

	return t, nil
}

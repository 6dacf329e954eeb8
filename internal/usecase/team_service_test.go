package usecase

import (
	"errors"
	"testing"

	"github.com/pickemhq/pickem/internal/domain/user"
)

func newTeamService(r repos) *TeamService {
	return NewTeamService(r.teams, &staticIDGenerator{prefix: "tm"}, nopLogger())
}

func TestTeamService_SearchTeams(t *testing.T) {
	r := newSeededRepos(t)
	service := newTeamService(r)
	ctx := t.Context()

	t.Run("case insensitive fragment", func(t *testing.T) {
		teams, err := service.SearchTeams(ctx, principal("u-alice"), "CHIEFS")
		if err != nil {
			t.Fatalf("search teams: %v", err)
		}
		if len(teams) != 1 || teams[0].ID != "nfl-kc" {
			t.Fatalf("unexpected result: %+v", teams)
		}
	})

	t.Run("empty query rejected", func(t *testing.T) {
		if _, err := service.SearchTeams(ctx, principal("u-alice"), "  "); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("anonymous refused", func(t *testing.T) {
		if _, err := service.SearchTeams(ctx, user.Principal{}, "chiefs"); !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}

func TestTeamService_CreateTeam(t *testing.T) {
	r := newSeededRepos(t)
	service := newTeamService(r)
	ctx := t.Context()

	t.Run("site admin creates", func(t *testing.T) {
		admin := user.Principal{UserID: "u-site", DisplayName: "Site Admin", SiteAdmin: true}
		created, err := service.CreateTeam(ctx, admin, "  Green Bay Packers ", "https://cdn.example.com/gb.png")
		if err != nil {
			t.Fatalf("create team: %v", err)
		}
		if created.Name != "Green Bay Packers" {
			t.Fatalf("name not trimmed: %q", created.Name)
		}

		got, exists, err := r.teams.GetByID(ctx, created.ID)
		if err != nil || !exists {
			t.Fatalf("created team missing: exists=%t err=%v", exists, err)
		}
		if got.LogoURL != "https://cdn.example.com/gb.png" {
			t.Fatalf("unexpected logo url: %q", got.LogoURL)
		}
	})

	t.Run("regular user refused", func(t *testing.T) {
		if _, err := service.CreateTeam(ctx, principal("u-alice"), "Rogue FC", ""); !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		admin := user.Principal{UserID: "u-site", SiteAdmin: true}
		if _, err := service.CreateTeam(ctx, admin, "   ", ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

package team

import (
	"context"
	"fmt"
	"strings"
)

// Team is a pickable side referenced by spreads.
type Team struct {
	ID      string
	Name    string
	LogoURL string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Repository exposes the team catalog. SearchByName matches case-insensitively
// on a name fragment.
type Repository interface {
	GetByID(ctx context.Context, id string) (Team, bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]Team, error)
	SearchByName(ctx context.Context, query string, limit int) ([]Team, error)
	Create(ctx context.Context, t Team) error
}

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pickemhq/pickem/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: make(map[string]team.Team)}
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	return t, ok, nil
}

func (r *TeamRepository) ListByIDs(_ context.Context, ids []string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.items[id]; ok {
			teams = append(teams, t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })

	return teams, nil
}

func (r *TeamRepository) SearchByName(_ context.Context, query string, limit int) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	teams := make([]team.Team, 0)
	for _, t := range r.items {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			teams = append(teams, t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	if limit > 0 && len(teams) > limit {
		teams = teams[:limit]
	}

	return teams, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[t.ID] = t
	return nil
}

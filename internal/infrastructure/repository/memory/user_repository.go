package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickemhq/pickem/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[string]user.User)}
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	return u, ok, nil
}

func (r *UserRepository) ListByIDs(_ context.Context, ids []string) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.items[id]; ok {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

func (r *UserRepository) Upsert(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[u.ID] = u
	return nil
}

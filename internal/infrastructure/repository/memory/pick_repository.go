package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickemhq/pickem/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.RWMutex
	items map[string]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{items: make(map[string]pick.Pick)}
}

func (r *PickRepository) ListByChapter(_ context.Context, chapterID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked(func(p pick.Pick) bool { return p.ChapterID == chapterID }), nil
}

func (r *PickRepository) ListByChapterUser(_ context.Context, chapterID, userID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked(func(p pick.Pick) bool {
		return p.ChapterID == chapterID && p.UserID == userID
	}), nil
}

func (r *PickRepository) ListByBook(_ context.Context, bookID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked(func(p pick.Pick) bool { return p.BookID == bookID }), nil
}

func (r *PickRepository) ReplaceChapterPicks(_ context.Context, bookID, chapterID, userID string, picks []pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.items {
		if p.BookID == bookID && p.ChapterID == chapterID && p.UserID == userID {
			delete(r.items, key)
		}
	}
	for _, p := range picks {
		r.items[pickKey(p)] = clonePick(p)
	}

	return nil
}

func (r *PickRepository) setPoints(eventID, userID string, points int) {
	for key, p := range r.items {
		if p.EventID == eventID && p.UserID == userID {
			p.Points = &points
			r.items[key] = p
			return
		}
	}
}

func (r *PickRepository) deleteByChapter(chapterID string) {
	for key, p := range r.items {
		if p.ChapterID == chapterID {
			delete(r.items, key)
		}
	}
}

func (r *PickRepository) listLocked(match func(pick.Pick) bool) []pick.Pick {
	picks := make([]pick.Pick, 0)
	for _, p := range r.items {
		if match(p) {
			picks = append(picks, clonePick(p))
		}
	}
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].EventID != picks[j].EventID {
			return picks[i].EventID < picks[j].EventID
		}
		return picks[i].UserID < picks[j].UserID
	})

	return picks
}

func pickKey(p pick.Pick) string {
	return p.BookID + "::" + p.ChapterID + "::" + p.EventID + "::" + p.UserID
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickemhq/pickem/internal/domain/chapter"
)

// ChapterRepository holds chapters and cascades deletes into the event and
// pick repositories, mirroring the transactional cascade of the SQL store.
type ChapterRepository struct {
	mu     sync.RWMutex
	items  map[string]chapter.Chapter
	events *EventRepository
	picks  *PickRepository
}

func NewChapterRepository(events *EventRepository, picks *PickRepository) *ChapterRepository {
	return &ChapterRepository{
		items:  make(map[string]chapter.Chapter),
		events: events,
		picks:  picks,
	}
}

func (r *ChapterRepository) GetByID(_ context.Context, id string) (chapter.Chapter, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch, ok := r.items[id]
	return ch, ok, nil
}

func (r *ChapterRepository) ListByBook(_ context.Context, bookID string) ([]chapter.Chapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chapters := make([]chapter.Chapter, 0)
	for _, ch := range r.items {
		if ch.BookID == bookID {
			chapters = append(chapters, ch)
		}
	}
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].ID < chapters[j].ID })

	return chapters, nil
}

func (r *ChapterRepository) Create(_ context.Context, ch chapter.Chapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[ch.ID] = ch
	return nil
}

func (r *ChapterRepository) UpdateStatus(_ context.Context, id string, isOpen, isVisible bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.items[id]
	if !ok {
		return nil
	}
	ch.IsOpen = isOpen
	ch.IsVisible = isVisible
	r.items[id] = ch

	return nil
}

func (r *ChapterRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)

	if r.events != nil {
		r.events.mu.Lock()
		r.events.deleteByChapter(id)
		r.events.mu.Unlock()
	}
	if r.picks != nil {
		r.picks.mu.Lock()
		r.picks.deleteByChapter(id)
		r.picks.mu.Unlock()
	}

	return nil
}

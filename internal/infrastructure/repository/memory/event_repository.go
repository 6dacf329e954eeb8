package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pickemhq/pickem/internal/domain/event"
)

type EventRepository struct {
	mu    sync.RWMutex
	items map[string]event.Event
	// order preserves chapter-event order by chapter id.
	order map[string][]string
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		items: make(map[string]event.Event),
		order: make(map[string][]string),
	}
}

func (r *EventRepository) GetByID(_ context.Context, id string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, ok := r.items[id]
	if !ok {
		return event.Event{}, false, nil
	}

	return cloneEvent(ev), true, nil
}

func (r *EventRepository) ListByChapter(_ context.Context, chapterID string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.order[chapterID]
	events := make([]event.Event, 0, len(ids))
	for _, id := range ids {
		if ev, ok := r.items[id]; ok {
			events = append(events, cloneEvent(ev))
		}
	}

	return events, nil
}

func (r *EventRepository) CreateAll(_ context.Context, events []event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ev := range events {
		if _, exists := r.items[ev.ID]; exists {
			return fmt.Errorf("event %s already exists", ev.ID)
		}
	}
	for _, ev := range events {
		r.items[ev.ID] = cloneEvent(ev)
		r.order[ev.ChapterID] = append(r.order[ev.ChapterID], ev.ID)
	}

	return nil
}

func (r *EventRepository) UpdateContents(_ context.Context, id string, contents event.Contents) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev, ok := r.items[id]
	if !ok {
		return fmt.Errorf("event %s not found", id)
	}
	ev.Contents = cloneEventContents(contents)
	r.items[id] = ev

	return nil
}

func (r *EventRepository) deleteByChapter(chapterID string) {
	for _, id := range r.order[chapterID] {
		delete(r.items, id)
	}
	delete(r.order, chapterID)
}

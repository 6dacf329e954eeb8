package event

import "context"

// Repository exposes event storage. Listing preserves chapter-event order.
type Repository interface {
	GetByID(ctx context.Context, id string) (Event, bool, error)
	ListByChapter(ctx context.Context, chapterID string) ([]Event, error)
	CreateAll(ctx context.Context, events []Event) error
	UpdateContents(ctx context.Context, id string, contents Contents) error
}

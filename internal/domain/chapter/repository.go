package chapter

import "context"

// Repository exposes chapter storage. Delete cascades to the chapter's
// events and picks in one transaction.
type Repository interface {
	GetByID(ctx context.Context, id string) (Chapter, bool, error)
	ListByBook(ctx context.Context, bookID string) ([]Chapter, error)
	Create(ctx context.Context, c Chapter) error
	UpdateStatus(ctx context.Context, id string, isOpen, isVisible bool) error
	Delete(ctx context.Context, id string) error
}

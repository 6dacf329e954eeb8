package book

import "context"

// Repository exposes book and subscription storage. A user appears at most
// once per book; the store enforces the unique (book_id, user_id) pair.
type Repository interface {
	GetByID(ctx context.Context, id string) (Book, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Book, error)
	Create(ctx context.Context, b Book) error

	GetSubscription(ctx context.Context, bookID, userID string) (Subscription, bool, error)
	ListSubscriptions(ctx context.Context, bookID string) ([]Subscription, error)
	UpsertSubscription(ctx context.Context, sub Subscription) error
	DeleteSubscription(ctx context.Context, bookID, userID string) error
}

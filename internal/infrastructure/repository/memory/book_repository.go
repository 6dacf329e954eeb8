package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickemhq/pickem/internal/domain/book"
)

type BookRepository struct {
	mu    sync.RWMutex
	books map[string]book.Book
	subs  map[string]map[string]book.Subscription
}

func NewBookRepository() *BookRepository {
	return &BookRepository{
		books: make(map[string]book.Book),
		subs:  make(map[string]map[string]book.Subscription),
	}
}

func (r *BookRepository) GetByID(_ context.Context, id string) (book.Book, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	return b, ok, nil
}

func (r *BookRepository) ListByUser(_ context.Context, userID string) ([]book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]book.Book, 0)
	for bookID, members := range r.subs {
		if _, ok := members[userID]; !ok {
			continue
		}
		if b, ok := r.books[bookID]; ok {
			books = append(books, b)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })

	return books, nil
}

func (r *BookRepository) Create(_ context.Context, b book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books[b.ID] = b
	return nil
}

func (r *BookRepository) GetSubscription(_ context.Context, bookID, userID string) (book.Subscription, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.subs[bookID][userID]
	if !ok {
		return book.Subscription{}, false, nil
	}

	return cloneSubscription(sub), true, nil
}

func (r *BookRepository) ListSubscriptions(_ context.Context, bookID string) ([]book.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := make([]book.Subscription, 0, len(r.subs[bookID]))
	for _, sub := range r.subs[bookID] {
		subs = append(subs, cloneSubscription(sub))
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].UserID < subs[j].UserID })

	return subs, nil
}

func (r *BookRepository) UpsertSubscription(_ context.Context, sub book.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.subs[sub.BookID] == nil {
		r.subs[sub.BookID] = make(map[string]book.Subscription)
	}
	r.subs[sub.BookID][sub.UserID] = cloneSubscription(sub)
	return nil
}

func (r *BookRepository) DeleteSubscription(_ context.Context, bookID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.subs[bookID], userID)
	return nil
}

func cloneSubscription(s book.Subscription) book.Subscription {
	copied := s
	copied.GuestChapterIDs = append([]string(nil), s.GuestChapterIDs...)
	return copied
}

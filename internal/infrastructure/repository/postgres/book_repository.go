package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pickemhq/pickem/internal/domain/book"
	qb "github.com/pickemhq/pickem/internal/platform/querybuilder"
)

type BookRepository struct {
	db *sqlx.DB
}

func NewBookRepository(db *sqlx.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (book.Book, bool, error) {
	query, args, err := qb.Select("*").
		From("books").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return book.Book{}, false, fmt.Errorf("build get book query: %w", err)
	}

	var row bookTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return book.Book{}, false, nil
		}
		return book.Book{}, false, fmt.Errorf("get book: %w", err)
	}

	return book.Book{ID: row.PublicID, Name: row.Name}, true, nil
}

func (r *BookRepository) ListByUser(ctx context.Context, userID string) ([]book.Book, error) {
	subsQuery, subsArgs, err := qb.Select("book_public_id").
		From("subscriptions").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list subscribed books query: %w", err)
	}

	var bookIDs []string
	if err := r.db.SelectContext(ctx, &bookIDs, subsQuery, subsArgs...); err != nil {
		return nil, fmt.Errorf("list subscribed books: %w", err)
	}
	if len(bookIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(bookIDs))
	for _, id := range bookIDs {
		values = append(values, id)
	}
	query, args, err := qb.Select("*").
		From("books").
		Where(
			qb.In("public_id", values),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list books query: %w", err)
	}

	var rows []bookTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	out := make([]book.Book, 0, len(rows))
	for _, row := range rows {
		out = append(out, book.Book{ID: row.PublicID, Name: row.Name})
	}
	return out, nil
}

func (r *BookRepository) Create(ctx context.Context, b book.Book) error {
	insertModel := bookInsertModel{
		PublicID: b.ID,
		Name:     b.Name,
	}
	query, args, err := qb.InsertModel("books", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert book query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("book %s already exists: %w", b.ID, err)
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *BookRepository) GetSubscription(ctx context.Context, bookID, userID string) (book.Subscription, bool, error) {
	query, args, err := qb.Select("*").
		From("subscriptions").
		Where(
			qb.Eq("book_public_id", bookID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return book.Subscription{}, false, fmt.Errorf("build get subscription query: %w", err)
	}

	var row subscriptionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return book.Subscription{}, false, nil
		}
		return book.Subscription{}, false, fmt.Errorf("get subscription: %w", err)
	}

	return subscriptionToDomain(row), true, nil
}

func (r *BookRepository) ListSubscriptions(ctx context.Context, bookID string) ([]book.Subscription, error) {
	query, args, err := qb.Select("*").
		From("subscriptions").
		Where(
			qb.Eq("book_public_id", bookID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list subscriptions query: %w", err)
	}

	var rows []subscriptionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	out := make([]book.Subscription, 0, len(rows))
	for _, row := range rows {
		out = append(out, subscriptionToDomain(row))
	}
	return out, nil
}

func (r *BookRepository) UpsertSubscription(ctx context.Context, sub book.Subscription) error {
	insertModel := subscriptionInsertModel{
		BookID:          sub.BookID,
		UserID:          sub.UserID,
		Role:            string(sub.Role),
		GuestChapterIDs: pq.StringArray(sub.GuestChapterIDs),
	}
	query, args, err := qb.InsertModel("subscriptions", insertModel, `ON CONFLICT (book_public_id, user_id) WHERE deleted_at IS NULL
DO UPDATE SET
    role = EXCLUDED.role,
    guest_chapter_ids = EXCLUDED.guest_chapter_ids,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert subscription query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

func (r *BookRepository) DeleteSubscription(ctx context.Context, bookID, userID string) error {
	query, args, err := qb.Update("subscriptions").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("book_public_id", bookID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete subscription query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

func subscriptionToDomain(row subscriptionTableModel) book.Subscription {
	return book.Subscription{
		BookID:          row.BookID,
		UserID:          row.UserID,
		Role:            book.Role(row.Role),
		GuestChapterIDs: append([]string(nil), row.GuestChapterIDs...),
	}
}

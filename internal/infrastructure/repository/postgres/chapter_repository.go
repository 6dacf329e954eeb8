package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pickemhq/pickem/internal/domain/chapter"
	qb "github.com/pickemhq/pickem/internal/platform/querybuilder"
)

type ChapterRepository struct {
	db *sqlx.DB
}

func NewChapterRepository(db *sqlx.DB) *ChapterRepository {
	return &ChapterRepository{db: db}
}

func (r *ChapterRepository) GetByID(ctx context.Context, id string) (chapter.Chapter, bool, error) {
	query, args, err := qb.Select("*").
		From("chapters").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return chapter.Chapter{}, false, fmt.Errorf("build get chapter query: %w", err)
	}

	var row chapterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return chapter.Chapter{}, false, nil
		}
		return chapter.Chapter{}, false, fmt.Errorf("get chapter: %w", err)
	}

	return chapterToDomain(row), true, nil
}

func (r *ChapterRepository) ListByBook(ctx context.Context, bookID string) ([]chapter.Chapter, error) {
	query, args, err := qb.Select("*").
		From("chapters").
		Where(
			qb.Eq("book_public_id", bookID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list chapters query: %w", err)
	}

	var rows []chapterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	out := make([]chapter.Chapter, 0, len(rows))
	for _, row := range rows {
		out = append(out, chapterToDomain(row))
	}
	return out, nil
}

func (r *ChapterRepository) Create(ctx context.Context, ch chapter.Chapter) error {
	insertModel := chapterInsertModel{
		PublicID:  ch.ID,
		BookID:    ch.BookID,
		Title:     ch.Title,
		IsOpen:    ch.IsOpen,
		IsVisible: ch.IsVisible,
	}
	query, args, err := qb.InsertModel("chapters", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert chapter query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("chapter %s already exists: %w", ch.ID, err)
		}
		return fmt.Errorf("insert chapter: %w", err)
	}
	return nil
}

func (r *ChapterRepository) UpdateStatus(ctx context.Context, id string, isOpen, isVisible bool) error {
	query, args, err := qb.Update("chapters").
		Set("is_open", isOpen).
		Set("is_visible", isVisible).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update chapter status query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update chapter status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("chapter %s not found", id)
	}
	return nil
}

// Delete removes the chapter together with its events and picks in one
// transaction.
func (r *ChapterRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx delete chapter: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, target := range []struct {
		table  string
		column string
	}{
		{table: "picks", column: "chapter_public_id"},
		{table: "events", column: "chapter_public_id"},
		{table: "chapters", column: "public_id"},
	} {
		query, args, err := qb.Update(target.table).
			SetExpr("deleted_at", "NOW()").
			Where(
				qb.Eq(target.column, id),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", target.table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s for chapter %s: %w", target.table, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete chapter tx: %w", err)
	}
	return nil
}

func chapterToDomain(row chapterTableModel) chapter.Chapter {
	return chapter.Chapter{
		ID:        row.PublicID,
		BookID:    row.BookID,
		Title:     row.Title,
		IsOpen:    row.IsOpen,
		IsVisible: row.IsVisible,
	}
}

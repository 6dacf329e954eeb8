package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pickemhq/pickem/internal/domain/pick"
	qb "github.com/pickemhq/pickem/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) ListByChapter(ctx context.Context, chapterID string) ([]pick.Pick, error) {
	return r.list(ctx, qb.Eq("chapter_public_id", chapterID))
}

func (r *PickRepository) ListByChapterUser(ctx context.Context, chapterID, userID string) ([]pick.Pick, error) {
	return r.list(ctx, qb.Eq("chapter_public_id", chapterID), qb.Eq("user_id", userID))
}

func (r *PickRepository) ListByBook(ctx context.Context, bookID string) ([]pick.Pick, error) {
	return r.list(ctx, qb.Eq("book_public_id", bookID))
}

func (r *PickRepository) list(ctx context.Context, conditions ...qb.Condition) ([]pick.Pick, error) {
	conditions = append(conditions, qb.IsNull("deleted_at"))
	query, args, err := qb.Select("*").
		From("picks").
		Where(conditions...).
		OrderBy("event_public_id", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		p, err := pickToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ReplaceChapterPicks swaps the user's picks for the chapter wholesale. Any
// points from a previous grading pass are discarded with the old picks.
// Superseded picks are hard-deleted; they carry no audit value and would
// otherwise pile up under the partial unique index with every resubmit.
func (r *PickRepository) ReplaceChapterPicks(ctx context.Context, bookID, chapterID, userID string, picks []pick.Pick) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace picks: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("picks").
		Where(
			qb.Eq("book_public_id", bookID),
			qb.Eq("chapter_public_id", chapterID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear picks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear picks: %w", err)
	}

	for _, p := range picks {
		contents, err := p.Contents.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode pick %s contents: %w", p.EventID, err)
		}
		insertModel := pickInsertModel{
			BookID:    p.BookID,
			ChapterID: p.ChapterID,
			EventID:   p.EventID,
			UserID:    p.UserID,
			Contents:  contents,
			Points:    nullableInt(p.Points),
		}
		query, args, err := qb.InsertModel("picks", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert pick query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("pick for event %s already exists: %w", p.EventID, err)
			}
			return fmt.Errorf("insert pick for event %s: %w", p.EventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace picks tx: %w", err)
	}
	return nil
}

func pickToDomain(row pickTableModel) (pick.Pick, error) {
	var contents pick.Contents
	if err := contents.UnmarshalJSON(row.Contents); err != nil {
		return pick.Pick{}, fmt.Errorf("decode pick %s/%s contents: %w", row.EventID, row.UserID, err)
	}
	return pick.Pick{
		BookID:    row.BookID,
		ChapterID: row.ChapterID,
		EventID:   row.EventID,
		UserID:    row.UserID,
		Contents:  contents,
		Points:    nullInt64ToIntPtr(row.Points),
	}, nil
}

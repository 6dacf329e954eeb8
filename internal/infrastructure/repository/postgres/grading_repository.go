package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/domain/pick"
	qb "github.com/pickemhq/pickem/internal/platform/querybuilder"
)

type GradingRepository struct {
	db *sqlx.DB
}

func NewGradingRepository(db *sqlx.DB) *GradingRepository {
	return &GradingRepository{db: db}
}

// ApplyAnswers stores the answered events and the recomputed pick points in a
// single transaction so a partial grading pass never becomes visible.
func (r *GradingRepository) ApplyAnswers(ctx context.Context, events []event.Event, updates []pick.PointsUpdate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply answers: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, ev := range events {
		contents, err := ev.Contents.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode event %s contents: %w", ev.ID, err)
		}
		query, args, err := qb.Update("events").
			Set("contents", contents).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("public_id", ev.ID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update event contents query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update event %s contents: %w", ev.ID, err)
		}
	}

	for _, update := range updates {
		query, args, err := qb.Update("picks").
			Set("points", update.Points).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("event_public_id", update.EventID),
				qb.Eq("user_id", update.UserID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update pick points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update pick points for %s/%s: %w", update.EventID, update.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply answers tx: %w", err)
	}
	return nil
}

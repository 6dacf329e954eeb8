package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pickemhq/pickem/internal/domain/event"
	qb "github.com/pickemhq/pickem/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (event.Event, bool, error) {
	query, args, err := qb.Select("*").
		From("events").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event: %w", err)
	}

	ev, err := eventToDomain(row)
	if err != nil {
		return event.Event{}, false, err
	}
	return ev, true, nil
}

func (r *EventRepository) ListByChapter(ctx context.Context, chapterID string) ([]event.Event, error) {
	query, args, err := qb.Select("*").
		From("events").
		Where(
			qb.Eq("chapter_public_id", chapterID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		ev, err := eventToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (r *EventRepository) CreateAll(ctx context.Context, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create events: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for position, ev := range events {
		contents, err := ev.Contents.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode event %s contents: %w", ev.ID, err)
		}
		insertModel := eventInsertModel{
			PublicID:  ev.ID,
			ChapterID: ev.ChapterID,
			BookID:    ev.BookID,
			Kind:      string(ev.Kind()),
			Contents:  contents,
			Position:  position,
		}
		query, args, err := qb.InsertModel("events", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("event %s already exists: %w", ev.ID, err)
			}
			return fmt.Errorf("insert event %s: %w", ev.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create events tx: %w", err)
	}
	return nil
}

func (r *EventRepository) UpdateContents(ctx context.Context, id string, contents event.Contents) error {
	encoded, err := contents.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode event %s contents: %w", id, err)
	}

	query, args, err := qb.Update("events").
		Set("contents", encoded).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update event contents query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event contents: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("event %s not found", id)
	}
	return nil
}

func eventToDomain(row eventTableModel) (event.Event, error) {
	var contents event.Contents
	if err := contents.UnmarshalJSON(row.Contents); err != nil {
		return event.Event{}, fmt.Errorf("decode event %s contents: %w", row.PublicID, err)
	}
	return event.Event{
		ID:        row.PublicID,
		ChapterID: row.ChapterID,
		BookID:    row.BookID,
		Contents:  contents,
	}, nil
}

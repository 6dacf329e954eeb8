package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/pickemhq/pickem/internal/domain/team"
	qb "github.com/pickemhq/pickem/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").
		From("teams").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return teamToDomain(row), true, nil
}

func (r *TeamRepository) ListByIDs(ctx context.Context, ids []string) ([]team.Team, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	query, args, err := qb.Select("*").
		From("teams").
		Where(
			qb.In("public_id", values),
			qb.IsNull("deleted_at"),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamToDomain(row))
	}
	return out, nil
}

func (r *TeamRepository) SearchByName(ctx context.Context, name string, limit int) ([]team.Team, error) {
	pattern := "%" + strings.ToLower(name) + "%"
	query, args, err := qb.Select("*").
		From("teams").
		Where(
			qb.Expr("LOWER(name) LIKE ?", pattern),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name", "public_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamToDomain(row))
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	insertModel := teamInsertModel{
		PublicID: t.ID,
		Name:     t.Name,
		LogoURL:  t.LogoURL,
	}
	query, args, err := qb.InsertModel("teams", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("team %s already exists: %w", t.ID, err)
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func teamToDomain(row teamTableModel) team.Team {
	return team.Team{
		ID:      row.PublicID,
		Name:    row.Name,
		LogoURL: row.LogoURL,
	}
}

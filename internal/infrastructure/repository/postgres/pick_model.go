package postgres

import (
	"database/sql"
	"time"
)

type pickTableModel struct {
	ID        int64         `db:"id"`
	BookID    string        `db:"book_public_id"`
	ChapterID string        `db:"chapter_public_id"`
	EventID   string        `db:"event_public_id"`
	UserID    string        `db:"user_id"`
	Contents  []byte        `db:"contents"`
	Points    sql.NullInt64 `db:"points"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
	DeletedAt *time.Time    `db:"deleted_at"`
}

type pickInsertModel struct {
	BookID    string        `db:"book_public_id"`
	ChapterID string        `db:"chapter_public_id"`
	EventID   string        `db:"event_public_id"`
	UserID    string        `db:"user_id"`
	Contents  []byte        `db:"contents"`
	Points    sql.NullInt64 `db:"points"`
}

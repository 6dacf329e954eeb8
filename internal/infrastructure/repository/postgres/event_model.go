package postgres

import "time"

type eventTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	ChapterID string     `db:"chapter_public_id"`
	BookID    string     `db:"book_public_id"`
	Kind      string     `db:"kind"`
	Contents  []byte     `db:"contents"`
	Position  int        `db:"position"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type eventInsertModel struct {
	PublicID  string `db:"public_id"`
	ChapterID string `db:"chapter_public_id"`
	BookID    string `db:"book_public_id"`
	Kind      string `db:"kind"`
	Contents  []byte `db:"contents"`
	Position  int    `db:"position"`
}

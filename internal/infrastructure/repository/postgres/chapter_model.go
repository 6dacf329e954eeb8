package postgres

import "time"

type chapterTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	BookID    string     `db:"book_public_id"`
	Title     string     `db:"title"`
	IsOpen    bool       `db:"is_open"`
	IsVisible bool       `db:"is_visible"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type chapterInsertModel struct {
	PublicID  string `db:"public_id"`
	BookID    string `db:"book_public_id"`
	Title     string `db:"title"`
	IsOpen    bool   `db:"is_open"`
	IsVisible bool   `db:"is_visible"`
}

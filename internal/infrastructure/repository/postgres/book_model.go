package postgres

import (
	"time"

	"github.com/lib/pq"
)

type bookTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type bookInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
}

type subscriptionTableModel struct {
	ID              int64          `db:"id"`
	BookID          string         `db:"book_public_id"`
	UserID          string         `db:"user_id"`
	Role            string         `db:"role"`
	GuestChapterIDs pq.StringArray `db:"guest_chapter_ids"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type subscriptionInsertModel struct {
	BookID          string         `db:"book_public_id"`
	UserID          string         `db:"user_id"`
	Role            string         `db:"role"`
	GuestChapterIDs pq.StringArray `db:"guest_chapter_ids"`
}

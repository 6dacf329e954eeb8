package postgres

import "time"

type userTableModel struct {
	ID          int64      `db:"id"`
	UserID      string     `db:"user_id"`
	DisplayName string     `db:"display_name"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type userInsertModel struct {
	UserID      string `db:"user_id"`
	DisplayName string `db:"display_name"`
}

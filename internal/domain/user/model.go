package user

import "context"

// User is the profile the service keeps for a member; identity comes from
// the external account service.
type User struct {
	ID          string
	DisplayName string
}

// Principal is an authenticated caller. SiteAdmin is orthogonal to book
// roles and only gates site-wide operations such as creating books.
type Principal struct {
	UserID      string
	DisplayName string
	SiteAdmin   bool
}

// Repository exposes user profile storage.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]User, error)
	Upsert(ctx context.Context, u User) error
}

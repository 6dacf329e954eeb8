package pick

import "context"

// PointsUpdate assigns graded points to one pick.
type PointsUpdate struct {
	EventID string
	UserID  string
	Points  int
}

// Repository exposes pick storage. ReplaceChapterPicks swaps a user's picks
// for a whole chapter in one transaction so concurrent submissions serialize
// at the store.
type Repository interface {
	ListByChapter(ctx context.Context, chapterID string) ([]Pick, error)
	ListByChapterUser(ctx context.Context, chapterID, userID string) ([]Pick, error)
	ListByBook(ctx context.Context, bookID string) ([]Pick, error)
	ReplaceChapterPicks(ctx context.Context, bookID, chapterID, userID string, picks []Pick) error
}

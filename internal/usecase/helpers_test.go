package usecase

import (
	"fmt"
	"testing"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/pick"
	"github.com/pickemhq/pickem/internal/domain/user"
	"github.com/pickemhq/pickem/internal/infrastructure/repository/memory"
	"github.com/pickemhq/pickem/internal/platform/logging"
)

type staticIDGenerator struct {
	prefix string
	next   int
}

func (g *staticIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

// repos bundles the in-memory stores seeded with the demo book: an open,
// visible chapter holding one spread group (-3, +7, -1.5) and one question
// worth 4 points.
type repos struct {
	books    *memory.BookRepository
	chapters *memory.ChapterRepository
	events   *memory.EventRepository
	picks    *memory.PickRepository
	grading  *memory.GradingRepository
	teams    *memory.TeamRepository
	users    *memory.UserRepository
}

func newSeededRepos(t *testing.T) repos {
	t.Helper()

	r := repos{
		books:  memory.NewBookRepository(),
		events: memory.NewEventRepository(),
		picks:  memory.NewPickRepository(),
		teams:  memory.NewTeamRepository(),
		users:  memory.NewUserRepository(),
	}
	r.chapters = memory.NewChapterRepository(r.events, r.picks)
	r.grading = memory.NewGradingRepository(r.events, r.picks)

	if err := memory.Seed(t.Context(), r.books, r.chapters, r.events, r.teams, r.users); err != nil {
		t.Fatalf("seed repositories: %v", err)
	}

	return r
}

func nopLogger() *logging.Logger {
	return logging.NewNop()
}

func principal(userID string) user.Principal {
	return user.Principal{UserID: userID, DisplayName: userID}
}

func (r repos) addMember(t *testing.T, userID string, role book.Role, guestChapters ...string) {
	t.Helper()

	if err := r.users.Upsert(t.Context(), user.User{ID: userID, DisplayName: userID}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}
	err := r.books.UpsertSubscription(t.Context(), book.Subscription{
		BookID:          memory.SeedBookID,
		UserID:          userID,
		Role:            role,
		GuestChapterIDs: guestChapters,
	})
	if err != nil {
		t.Fatalf("upsert subscription: %v", err)
	}
}

// validSubmission covers both seeded events with legal payloads.
func validSubmission() pick.Submission {
	return pick.Submission{
		{
			Type:    pick.EntryTypeSpreadGroup,
			EventID: "ev-week1-games",
			Spreads: []pick.SpreadEntry{
				{Selection: "home", NumPoints: 2},
				{Selection: "away", NumPoints: 1},
				{Selection: "home", NumPoints: 3},
			},
		},
		{
			Type:      pick.EntryTypeUserInput,
			EventID:   "ev-week1-mvp",
			UserInput: "Patrick Mahomes",
		},
	}
}

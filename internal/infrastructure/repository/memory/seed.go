package memory

import (
	"context"
	"fmt"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/chapter"
	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/domain/team"
	"github.com/pickemhq/pickem/internal/domain/user"
)

// Dev seed identifiers, handy for poking the API without a database.
const (
	SeedBookID    = "bk-demo"
	SeedChapterID = "ch-week-1"
	SeedOwnerID   = "u-owner"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "nfl-kc", Name: "Kansas City Chiefs"},
		{ID: "nfl-buf", Name: "Buffalo Bills"},
		{ID: "nfl-phi", Name: "Philadelphia Eagles"},
		{ID: "nfl-dal", Name: "Dallas Cowboys"},
		{ID: "nfl-sf", Name: "San Francisco 49ers"},
		{ID: "nfl-det", Name: "Detroit Lions"},
	}
}

func SeedUsers() []user.User {
	return []user.User{
		{ID: SeedOwnerID, DisplayName: "Pool Owner"},
		{ID: "u-alice", DisplayName: "alice"},
		{ID: "u-bob", DisplayName: "Bob"},
	}
}

// Seed loads a demo book with one open, visible chapter into the given
// repositories.
func Seed(
	ctx context.Context,
	books *BookRepository,
	chapters *ChapterRepository,
	events *EventRepository,
	teams *TeamRepository,
	users *UserRepository,
) error {
	for _, t := range SeedTeams() {
		if err := teams.Create(ctx, t); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}
	for _, u := range SeedUsers() {
		if err := users.Upsert(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	if err := books.Create(ctx, book.Book{ID: SeedBookID, Name: "Office Pool"}); err != nil {
		return fmt.Errorf("seed book: %w", err)
	}
	subs := []book.Subscription{
		{BookID: SeedBookID, UserID: SeedOwnerID, Role: book.RoleOwner},
		{BookID: SeedBookID, UserID: "u-alice", Role: book.RoleParticipant},
		{BookID: SeedBookID, UserID: "u-bob", Role: book.RoleParticipant},
	}
	for _, sub := range subs {
		if err := books.UpsertSubscription(ctx, sub); err != nil {
			return fmt.Errorf("seed subscription %s: %w", sub.UserID, err)
		}
	}

	ch := chapter.Chapter{
		ID:        SeedChapterID,
		BookID:    SeedBookID,
		Title:     "Week 1",
		IsOpen:    true,
		IsVisible: true,
	}
	if err := chapters.Create(ctx, ch); err != nil {
		return fmt.Errorf("seed chapter: %w", err)
	}

	line := func(raw string) event.Line {
		l, err := event.ParseLine(raw)
		if err != nil {
			panic(err)
		}
		return l
	}
	seedEvents := []event.Event{
		{
			ID:        "ev-week1-games",
			ChapterID: SeedChapterID,
			BookID:    SeedBookID,
			Contents: event.Contents{SpreadGroup: &event.SpreadGroup{Spreads: []event.Spread{
				{HomeID: "nfl-kc", AwayID: "nfl-buf", HomeLine: line("-3")},
				{HomeID: "nfl-phi", AwayID: "nfl-dal", HomeLine: line("+7")},
				{HomeID: "nfl-sf", AwayID: "nfl-det", HomeLine: line("-1.5")},
			}}},
		},
		{
			ID:        "ev-week1-mvp",
			ChapterID: SeedChapterID,
			BookID:    SeedBookID,
			Contents: event.Contents{UserInput: &event.UserInput{
				Title:  "Who throws for the most yards?",
				Points: 4,
			}},
		},
	}
	if err := events.CreateAll(ctx, seedEvents); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}

	return nil
}

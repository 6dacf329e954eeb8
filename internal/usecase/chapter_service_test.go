package usecase

import (
	"errors"
	"testing"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/infrastructure/repository/memory"
)

func newChapterService(r repos) *ChapterService {
	return NewChapterService(r.books, r.chapters, r.events, r.teams, &staticIDGenerator{prefix: "ch"}, nopLogger())
}

func mustLine(t *testing.T, raw string) event.Line {
	t.Helper()

	l, err := event.ParseLine(raw)
	if err != nil {
		t.Fatalf("parse line %q: %v", raw, err)
	}
	return l
}

func week2Events(t *testing.T) []event.Contents {
	t.Helper()

	return []event.Contents{
		{SpreadGroup: &event.SpreadGroup{Spreads: []event.Spread{
			{HomeID: "nfl-kc", AwayID: "nfl-phi", HomeLine: mustLine(t, "-2.5")},
			{HomeID: "nfl-buf", AwayID: "nfl-dal", HomeLine: mustLine(t, "+3")},
		}}},
		{UserInput: &event.UserInput{Title: "Longest field goal?", Points: 3}},
	}
}

func TestChapterService_CreateChapter(t *testing.T) {
	r := newSeededRepos(t)
	service := newChapterService(r)
	ctx := t.Context()
	owner := principal(memory.SeedOwnerID)

	t.Run("owner creates closed hidden chapter", func(t *testing.T) {
		created, err := service.CreateChapter(ctx, memory.SeedBookID, owner, CreateChapterInput{
			Title:  "Week 2",
			Events: week2Events(t),
		})
		if err != nil {
			t.Fatalf("create chapter: %v", err)
		}
		if created.Chapter.IsOpen || created.Chapter.IsVisible {
			t.Fatalf("new chapter should start closed and hidden, got open=%t visible=%t",
				created.Chapter.IsOpen, created.Chapter.IsVisible)
		}
		if len(created.Events) != 2 {
			t.Fatalf("event count = %d, want 2", len(created.Events))
		}
		if created.Events[0].Kind() != event.KindSpreadGroup || created.Events[1].Kind() != event.KindUserInput {
			t.Fatalf("events out of order: %s, %s", created.Events[0].Kind(), created.Events[1].Kind())
		}
	})

	t.Run("participant refused", func(t *testing.T) {
		_, err := service.CreateChapter(ctx, memory.SeedBookID, principal("u-alice"), CreateChapterInput{
			Title:  "Rogue Week",
			Events: week2Events(t),
		})
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := service.CreateChapter(ctx, memory.SeedBookID, owner, CreateChapterInput{
			Title:  "   ",
			Events: week2Events(t),
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown team ref rejected", func(t *testing.T) {
		_, err := service.CreateChapter(ctx, memory.SeedBookID, owner, CreateChapterInput{
			Title: "Week 3",
			Events: []event.Contents{
				{SpreadGroup: &event.SpreadGroup{Spreads: []event.Spread{
					{HomeID: "nfl-nope", AwayID: "nfl-kc", HomeLine: mustLine(t, "-1")},
				}}},
			},
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("no events rejected", func(t *testing.T) {
		_, err := service.CreateChapter(ctx, memory.SeedBookID, owner, CreateChapterInput{Title: "Week 4"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestChapterService_UpdateStatus(t *testing.T) {
	r := newSeededRepos(t)
	service := newChapterService(r)
	ctx := t.Context()
	owner := principal(memory.SeedOwnerID)

	if err := service.UpdateStatus(ctx, memory.SeedBookID, memory.SeedChapterID, owner, false, true); err != nil {
		t.Fatalf("update status: %v", err)
	}

	ch, exists, err := r.chapters.GetByID(ctx, memory.SeedChapterID)
	if err != nil || !exists {
		t.Fatalf("get chapter: exists=%t err=%v", exists, err)
	}
	if ch.IsOpen {
		t.Fatalf("chapter should be closed")
	}
	if !ch.IsVisible {
		t.Fatalf("chapter should stay visible")
	}

	if err := service.UpdateStatus(ctx, memory.SeedBookID, "ch-missing", owner, true, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing chapter, got %v", err)
	}
}

func TestChapterService_ListChapters_VisibilityByRole(t *testing.T) {
	r := newSeededRepos(t)
	service := newChapterService(r)
	ctx := t.Context()
	owner := principal(memory.SeedOwnerID)

	hidden, err := service.CreateChapter(ctx, memory.SeedBookID, owner, CreateChapterInput{
		Title:  "Hidden Week",
		Events: week2Events(t),
	})
	if err != nil {
		t.Fatalf("create chapter: %v", err)
	}

	t.Run("admin sees hidden chapters", func(t *testing.T) {
		chapters, err := service.ListChapters(ctx, memory.SeedBookID, owner)
		if err != nil {
			t.Fatalf("list chapters: %v", err)
		}
		if len(chapters) != 2 {
			t.Fatalf("chapter count = %d, want 2", len(chapters))
		}
	})

	t.Run("participant sees only visible", func(t *testing.T) {
		chapters, err := service.ListChapters(ctx, memory.SeedBookID, principal("u-alice"))
		if err != nil {
			t.Fatalf("list chapters: %v", err)
		}
		if len(chapters) != 1 {
			t.Fatalf("chapter count = %d, want 1", len(chapters))
		}
		if chapters[0].ID != memory.SeedChapterID {
			t.Fatalf("unexpected chapter %s", chapters[0].ID)
		}
	})

	t.Run("guest scoped to granted chapters", func(t *testing.T) {
		r.addMember(t, "u-guest", book.RoleGuest, hidden.Chapter.ID)

		chapters, err := service.ListChapters(ctx, memory.SeedBookID, principal("u-guest"))
		if err != nil {
			t.Fatalf("list chapters: %v", err)
		}
		if len(chapters) != 0 {
			t.Fatalf("guest should not see the hidden chapter yet, got %d", len(chapters))
		}
	})
}

func TestChapterService_GetChapter(t *testing.T) {
	r := newSeededRepos(t)
	service := newChapterService(r)
	ctx := t.Context()

	got, err := service.GetChapter(ctx, memory.SeedBookID, memory.SeedChapterID, principal("u-alice"))
	if err != nil {
		t.Fatalf("get chapter: %v", err)
	}
	if len(got.Events) != 2 {
		t.Fatalf("event count = %d, want 2", len(got.Events))
	}

	if _, err := service.GetChapter(ctx, memory.SeedBookID, "ch-missing", principal("u-alice")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := service.GetChapter(ctx, memory.SeedBookID, memory.SeedChapterID, principal("u-stranger")); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for non-member, got %v", err)
	}
}

func TestChapterService_DeleteChapter_RemovesEventsAndPicks(t *testing.T) {
	r := newSeededRepos(t)
	service := newChapterService(r)
	submissions := NewSubmissionService(r.books, r.chapters, r.events, r.picks, nopLogger())
	ctx := t.Context()
	owner := principal(memory.SeedOwnerID)

	if err := submissions.Submit(ctx, memory.SeedBookID, memory.SeedChapterID, principal("u-alice"), validSubmission()); err != nil {
		t.Fatalf("submit picks: %v", err)
	}

	if err := service.DeleteChapter(ctx, memory.SeedBookID, memory.SeedChapterID, owner); err != nil {
		t.Fatalf("delete chapter: %v", err)
	}

	if _, exists, err := r.chapters.GetByID(ctx, memory.SeedChapterID); err != nil || exists {
		t.Fatalf("chapter should be gone: exists=%t err=%v", exists, err)
	}
	events, err := r.events.ListByChapter(ctx, memory.SeedChapterID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events should be gone, got %d", len(events))
	}
	picks, err := r.picks.ListByChapter(ctx, memory.SeedChapterID)
	if err != nil {
		t.Fatalf("list picks: %v", err)
	}
	if len(picks) != 0 {
		t.Fatalf("picks should be gone, got %d", len(picks))
	}
}

package usecase

import (
	"errors"
	"testing"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/domain/pick"
	"github.com/pickemhq/pickem/internal/infrastructure/repository/memory"
)

func newSubmissionService(r repos) *SubmissionService {
	return NewSubmissionService(r.books, r.chapters, r.events, r.picks, nopLogger())
}

func TestSubmissionService_Submit_AcceptsValidSubmission(t *testing.T) {
	r := newSeededRepos(t)
	service := newSubmissionService(r)

	err := service.Submit(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal("u-alice"), validSubmission())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	picks, err := r.picks.ListByChapterUser(t.Context(), memory.SeedChapterID, "u-alice")
	if err != nil {
		t.Fatalf("list picks: %v", err)
	}
	if len(picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(picks))
	}
	for _, p := range picks {
		if p.Points != nil {
			t.Fatalf("fresh pick has points set: %+v", p)
		}
	}
}

func TestSubmissionService_Submit_RejectsDuplicateWagers(t *testing.T) {
	r := newSeededRepos(t)
	service := newSubmissionService(r)

	sub := validSubmission()
	sub[0].Spreads[1].NumPoints = 2

	err := service.Submit(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal("u-alice"), sub)
	if !errors.Is(err, pick.ErrBadWagerPermutation) {
		t.Fatalf("expected ErrBadWagerPermutation, got %v", err)
	}

	picks, _ := r.picks.ListByChapterUser(t.Context(), memory.SeedChapterID, "u-alice")
	if len(picks) != 0 {
		t.Fatalf("rejected submission wrote %d picks", len(picks))
	}
}

func TestSubmissionService_Submit_ClosedChapter(t *testing.T) {
	r := newSeededRepos(t)
	service := newSubmissionService(r)

	if err := r.chapters.UpdateStatus(t.Context(), memory.SeedChapterID, false, true); err != nil {
		t.Fatalf("close chapter: %v", err)
	}

	err := service.Submit(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal("u-alice"), validSubmission())
	if !errors.Is(err, ErrChapterClosed) {
		t.Fatalf("expected ErrChapterClosed, got %v", err)
	}
}

func TestSubmissionService_Submit_GuestVisibility(t *testing.T) {
	r := newSeededRepos(t)
	service := newSubmissionService(r)

	t.Run("ungranted chapter is refused", func(t *testing.T) {
		r.addMember(t, "u-guest", book.RoleGuest, "ch-other")
		err := service.Submit(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal("u-guest"), validSubmission())
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("granted chapter succeeds", func(t *testing.T) {
		r.addMember(t, "u-guest", book.RoleGuest, memory.SeedChapterID)
		err := service.Submit(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal("u-guest"), validSubmission())
		if err != nil {
			t.Fatalf("guest submit failed: %v", err)
		}
	})

	t.Run("non-member is refused", func(t *testing.T) {
		err := service.Submit(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal("u-stranger"), validSubmission())
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})
}

func TestSubmissionService_Submit_EventSetMismatch(t *testing.T) {
	r := newSeededRepos(t)
	service := newSubmissionService(r)
	ctx := t.Context()
	alice := principal("u-alice")

	t.Run("missing event", func(t *testing.T) {
		sub := validSubmission()[:1]
		err := service.Submit(ctx, memory.SeedBookID, memory.SeedChapterID, alice, sub)
		if !errors.Is(err, ErrEventSetMismatch) {
			t.Fatalf("expected ErrEventSetMismatch, got %v", err)
		}
	})

	t.Run("duplicate event", func(t *testing.T) {
		sub := validSubmission()
		sub = append(sub, sub[1])
		err := service.Submit(ctx, memory.SeedBookID, memory.SeedChapterID, alice, sub)
		if !errors.Is(err, ErrEventSetMismatch) {
			t.Fatalf("expected ErrEventSetMismatch, got %v", err)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		sub := validSubmission()
		sub[1].EventID = "ev-unknown"
		err := service.Submit(ctx, memory.SeedBookID, memory.SeedChapterID, alice, sub)
		if !errors.Is(err, ErrEventSetMismatch) {
			t.Fatalf("expected ErrEventSetMismatch, got %v", err)
		}
	})
}

func TestSubmissionService_Submit_RejectsBlankAnswer(t *testing.T) {
	r := newSeededRepos(t)
	service := newSubmissionService(r)

	sub := validSubmission()
	sub[1].UserInput = "   "

	err := service.Submit(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal("u-alice"), sub)
	if !errors.Is(err, pick.ErrBadPayload) {
		t.Fatalf("expected ErrBadPayload, got %v", err)
	}
}

func TestSubmissionService_Submit_ResubmitResetsPoints(t *testing.T) {
	r := newSeededRepos(t)
	service := newSubmissionService(r)
	answers := NewAnswerService(r.books, r.chapters, r.events, r.picks, r.grading, nopLogger())
	ctx := t.Context()
	alice := principal("u-alice")

	if err := service.Submit(ctx, memory.SeedBookID, memory.SeedChapterID, alice, validSubmission()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	err := answers.RecordAnswers(ctx, memory.SeedBookID, memory.SeedChapterID, principal(memory.SeedOwnerID), []EventAnswers{
		{EventID: "ev-week1-games", Spreads: []event.Outcome{event.OutcomeHome, event.OutcomeHome, event.OutcomePush}},
		{EventID: "ev-week1-mvp", Answers: []string{"Patrick Mahomes"}},
	})
	if err != nil {
		t.Fatalf("record answers: %v", err)
	}

	graded, _ := r.picks.ListByChapterUser(ctx, memory.SeedChapterID, "u-alice")
	for _, p := range graded {
		if p.Points == nil {
			t.Fatalf("pick for %s not graded", p.EventID)
		}
	}

	if err := service.Submit(ctx, memory.SeedBookID, memory.SeedChapterID, alice, validSubmission()); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	replaced, _ := r.picks.ListByChapterUser(ctx, memory.SeedChapterID, "u-alice")
	if len(replaced) != 2 {
		t.Fatalf("expected 2 picks after resubmit, got %d", len(replaced))
	}
	for _, p := range replaced {
		if p.Points != nil {
			t.Fatalf("resubmitted pick for %s kept points %d", p.EventID, *p.Points)
		}
	}
}

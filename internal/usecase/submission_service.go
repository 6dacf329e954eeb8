package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/chapter"
	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/domain/pick"
	"github.com/pickemhq/pickem/internal/domain/user"
	"github.com/pickemhq/pickem/internal/platform/logging"
)

// SubmissionService accepts and replaces a user's picks for a chapter.
type SubmissionService struct {
	gate        memberGate
	chapterRepo chapter.Repository
	eventRepo   event.Repository
	pickRepo    pick.Repository
	logger      *logging.Logger
}

func NewSubmissionService(
	bookRepo book.Repository,
	chapterRepo chapter.Repository,
	eventRepo event.Repository,
	pickRepo pick.Repository,
	logger *logging.Logger,
) *SubmissionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SubmissionService{
		gate:        memberGate{bookRepo: bookRepo},
		chapterRepo: chapterRepo,
		eventRepo:   eventRepo,
		pickRepo:    pickRepo,
		logger:      logger,
	}
}

// Submit validates a whole-chapter submission and replaces the caller's
// picks in one transaction. Preconditions run in a fixed order: chapter
// open, then authorization, then event-set coverage, then per-event payloads
// with the spread-group wager permutation checked before free-text answers.
func (s *SubmissionService) Submit(ctx context.Context, bookID, chapterID string, p user.Principal, sub pick.Submission) error {
	ctx, span := startUsecaseSpan(ctx, "SubmissionService.Submit")
	defer span.End()

	bookID = strings.TrimSpace(bookID)
	chapterID = strings.TrimSpace(chapterID)
	if bookID == "" || chapterID == "" {
		return fmt.Errorf("%w: book_id and chapter_id are required", ErrInvalidInput)
	}

	ch, err := s.loadChapter(ctx, bookID, chapterID)
	if err != nil {
		return err
	}
	if !ch.IsOpen {
		return ErrChapterClosed
	}

	if _, err := s.gate.requireChapterView(ctx, ch, p); err != nil {
		return err
	}

	events, err := s.eventRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return fmt.Errorf("list chapter events: %w", err)
	}

	entryByEventID, err := matchEventSet(events, sub)
	if err != nil {
		return err
	}

	picks := make([]pick.Pick, 0, len(events))
	for _, pass := range []event.Kind{event.KindSpreadGroup, event.KindUserInput} {
		for _, ev := range events {
			if ev.Kind() != pass {
				continue
			}
			contents, err := entryByEventID[ev.ID].Contents(ev)
			if err != nil {
				return err
			}
			if err := contents.MatchesEvent(ev); err != nil {
				return err
			}
			picks = append(picks, pick.Pick{
				BookID:    bookID,
				ChapterID: chapterID,
				EventID:   ev.ID,
				UserID:    p.UserID,
				Contents:  contents,
			})
		}
	}

	if err := s.pickRepo.ReplaceChapterPicks(ctx, bookID, chapterID, p.UserID, picks); err != nil {
		return fmt.Errorf("replace chapter picks: %w", err)
	}

	s.logger.InfoContext(ctx, "picks submitted",
		"book_id", bookID,
		"chapter_id", chapterID,
		"user_id", p.UserID,
		"event_count", len(picks),
	)

	return nil
}

// MyPicks returns the caller's stored picks for a chapter, in chapter-event
// order.
func (s *SubmissionService) MyPicks(ctx context.Context, bookID, chapterID string, p user.Principal) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "SubmissionService.MyPicks")
	defer span.End()

	ch, err := s.loadChapter(ctx, strings.TrimSpace(bookID), strings.TrimSpace(chapterID))
	if err != nil {
		return nil, err
	}
	if _, err := s.gate.requireChapterView(ctx, ch, p); err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.ListByChapterUser(ctx, ch.ID, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list user picks: %w", err)
	}

	return orderPicksByEvents(ctx, s.eventRepo, ch.ID, picks)
}

func (s *SubmissionService) loadChapter(ctx context.Context, bookID, chapterID string) (chapter.Chapter, error) {
	ch, exists, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return chapter.Chapter{}, fmt.Errorf("get chapter: %w", err)
	}
	if !exists || ch.BookID != bookID {
		return chapter.Chapter{}, fmt.Errorf("%w: chapter", ErrNotFound)
	}

	return ch, nil
}

// matchEventSet pairs submission entries with chapter events one-to-one.
func matchEventSet(events []event.Event, sub pick.Submission) (map[string]pick.Entry, error) {
	byEventID := make(map[string]pick.Entry, len(sub))
	for _, entry := range sub {
		id := strings.TrimSpace(entry.EventID)
		if id == "" {
			return nil, fmt.Errorf("%w: entry without event id", ErrEventSetMismatch)
		}
		if _, dup := byEventID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate entry for event %s", ErrEventSetMismatch, id)
		}
		byEventID[id] = entry
	}

	if len(byEventID) != len(events) {
		return nil, fmt.Errorf("%w: %d entries for %d events", ErrEventSetMismatch, len(byEventID), len(events))
	}
	for _, ev := range events {
		if _, ok := byEventID[ev.ID]; !ok {
			return nil, fmt.Errorf("%w: no entry for event %s", ErrEventSetMismatch, ev.ID)
		}
	}

	return byEventID, nil
}

func orderPicksByEvents(ctx context.Context, eventRepo event.Repository, chapterID string, picks []pick.Pick) ([]pick.Pick, error) {
	events, err := eventRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list chapter events: %w", err)
	}

	byEventID := make(map[string]pick.Pick, len(picks))
	for _, p := range picks {
		byEventID[p.EventID] = p
	}

	ordered := make([]pick.Pick, 0, len(picks))
	for _, ev := range events {
		if p, ok := byEventID[ev.ID]; ok {
			ordered = append(ordered, p)
		}
	}

	return ordered, nil
}

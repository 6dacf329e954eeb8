package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/chapter"
	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/domain/grading"
	"github.com/pickemhq/pickem/internal/domain/pick"
	"github.com/pickemhq/pickem/internal/domain/user"
	"github.com/pickemhq/pickem/internal/platform/logging"
)

// EventAnswers carries an admin's answers for one event. Spreads is
// index-aligned with the event's spread order; Answers is the acceptable
// answer set for a free-text question (empty means nobody gets points).
type EventAnswers struct {
	EventID string
	Spreads []event.Outcome
	Answers []string
}

// AnswerService records admin answers for a chapter and grades it.
type AnswerService struct {
	gate        memberGate
	chapterRepo chapter.Repository
	eventRepo   event.Repository
	pickRepo    pick.Repository
	gradingRepo grading.Repository
	logger      *logging.Logger
}

func NewAnswerService(
	bookRepo book.Repository,
	chapterRepo chapter.Repository,
	eventRepo event.Repository,
	pickRepo pick.Repository,
	gradingRepo grading.Repository,
	logger *logging.Logger,
) *AnswerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AnswerService{
		gate:        memberGate{bookRepo: bookRepo},
		chapterRepo: chapterRepo,
		eventRepo:   eventRepo,
		pickRepo:    pickRepo,
		gradingRepo: gradingRepo,
		logger:      logger,
	}
}

// RecordAnswers writes the supplied answers into the chapter's events and
// grades every stored pick, all within one transaction. The answer set must
// cover every event exactly once.
func (s *AnswerService) RecordAnswers(ctx context.Context, bookID, chapterID string, p user.Principal, answers []EventAnswers) error {
	ctx, span := startUsecaseSpan(ctx, "AnswerService.RecordAnswers")
	defer span.End()

	bookID = strings.TrimSpace(bookID)
	chapterID = strings.TrimSpace(chapterID)
	if bookID == "" || chapterID == "" {
		return fmt.Errorf("%w: book_id and chapter_id are required", ErrInvalidInput)
	}

	if _, err := s.gate.requireAdmin(ctx, bookID, p); err != nil {
		return err
	}

	ch, exists, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return fmt.Errorf("get chapter: %w", err)
	}
	if !exists || ch.BookID != bookID {
		return fmt.Errorf("%w: chapter", ErrNotFound)
	}

	events, err := s.eventRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return fmt.Errorf("list chapter events: %w", err)
	}

	answered, err := applyAnswersToEvents(events, answers)
	if err != nil {
		return err
	}

	picks, err := s.pickRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return fmt.Errorf("list chapter picks: %w", err)
	}

	updates := grading.GradeChapter(answered, picks)
	if err := s.gradingRepo.ApplyAnswers(ctx, answered, updates); err != nil {
		return fmt.Errorf("apply answers: %w", err)
	}

	s.logger.InfoContext(ctx, "chapter graded",
		"book_id", bookID,
		"chapter_id", chapterID,
		"admin_id", p.UserID,
		"event_count", len(answered),
		"graded_picks", len(updates),
	)

	return nil
}

// applyAnswersToEvents merges the answer set into copies of the chapter's
// events, requiring exactly one well-formed answer entry per event.
func applyAnswersToEvents(events []event.Event, answers []EventAnswers) ([]event.Event, error) {
	byEventID := make(map[string]EventAnswers, len(answers))
	for _, a := range answers {
		id := strings.TrimSpace(a.EventID)
		if id == "" {
			return nil, fmt.Errorf("%w: answer without event id", ErrInvalidInput)
		}
		if _, dup := byEventID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate answers for event %s", ErrInvalidInput, id)
		}
		byEventID[id] = a
	}
	if len(byEventID) != len(events) {
		return nil, fmt.Errorf("%w: %d answer entries for %d events", ErrInvalidInput, len(byEventID), len(events))
	}

	answered := make([]event.Event, 0, len(events))
	for _, ev := range events {
		a, ok := byEventID[ev.ID]
		if !ok {
			return nil, fmt.Errorf("%w: no answers for event %s", ErrInvalidInput, ev.ID)
		}

		switch ev.Kind() {
		case event.KindSpreadGroup:
			group := ev.Contents.SpreadGroup
			if len(a.Spreads) != group.Arity() {
				return nil, fmt.Errorf("%w: event %s needs %d spread answers, got %d", ErrInvalidInput, ev.ID, group.Arity(), len(a.Spreads))
			}
			spreads := make([]event.Spread, group.Arity())
			copy(spreads, group.Spreads)
			for i, o := range a.Spreads {
				outcome, err := event.ParseOutcome(string(o))
				if err != nil {
					return nil, fmt.Errorf("%w: event %s spread %d: %v", ErrInvalidInput, ev.ID, i, err)
				}
				spreads[i].Answer = &outcome
			}
			ev.Contents = event.Contents{SpreadGroup: &event.SpreadGroup{Spreads: spreads}}
		case event.KindUserInput:
			if len(a.Spreads) != 0 {
				return nil, fmt.Errorf("%w: event %s is a question, not a spread group", ErrInvalidInput, ev.ID)
			}
			ui := *ev.Contents.UserInput
			ui.AcceptableAnswers = make([]string, 0, len(a.Answers))
			for _, answer := range a.Answers {
				answer = strings.TrimSpace(answer)
				if answer == "" {
					return nil, fmt.Errorf("%w: event %s has an empty acceptable answer", ErrInvalidInput, ev.ID)
				}
				ui.AcceptableAnswers = append(ui.AcceptableAnswers, answer)
			}
			ev.Contents = event.Contents{UserInput: &ui}
		}

		answered = append(answered, ev)
	}

	return answered, nil
}

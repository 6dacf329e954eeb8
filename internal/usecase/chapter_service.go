package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/chapter"
	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/domain/team"
	"github.com/pickemhq/pickem/internal/domain/user"
	idgen "github.com/pickemhq/pickem/internal/platform/id"
	"github.com/pickemhq/pickem/internal/platform/logging"
)

// ChapterWithEvents bundles a chapter with its events in stored order.
type ChapterWithEvents struct {
	Chapter chapter.Chapter
	Events  []event.Event
}

// ChapterService manages a book's chapters and their events.
type ChapterService struct {
	gate        memberGate
	chapterRepo chapter.Repository
	eventRepo   event.Repository
	teamRepo    team.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
}

func NewChapterService(
	bookRepo book.Repository,
	chapterRepo chapter.Repository,
	eventRepo event.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ChapterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ChapterService{
		gate:        memberGate{bookRepo: bookRepo},
		chapterRepo: chapterRepo,
		eventRepo:   eventRepo,
		teamRepo:    teamRepo,
		idGen:       idGen,
		logger:      logger,
	}
}

// CreateChapterInput creates a chapter with its events in one call. Events
// keep the given order. New chapters start closed and hidden.
type CreateChapterInput struct {
	Title  string
	Events []event.Contents
}

func (s *ChapterService) CreateChapter(ctx context.Context, bookID string, p user.Principal, input CreateChapterInput) (ChapterWithEvents, error) {
	ctx, span := startUsecaseSpan(ctx, "ChapterService.CreateChapter")
	defer span.End()

	bookID = strings.TrimSpace(bookID)
	if _, err := s.gate.requireAdmin(ctx, bookID, p); err != nil {
		return ChapterWithEvents{}, err
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return ChapterWithEvents{}, fmt.Errorf("%w: chapter title is required", ErrInvalidInput)
	}
	if len(input.Events) == 0 {
		return ChapterWithEvents{}, fmt.Errorf("%w: a chapter needs at least one event", ErrInvalidInput)
	}
	for i, contents := range input.Events {
		if err := contents.Validate(); err != nil {
			return ChapterWithEvents{}, fmt.Errorf("%w: event %d: %v", ErrInvalidInput, i, err)
		}
	}
	if err := s.validateTeamRefs(ctx, input.Events); err != nil {
		return ChapterWithEvents{}, err
	}

	chapterID, err := s.idGen.NewID()
	if err != nil {
		return ChapterWithEvents{}, fmt.Errorf("generate chapter id: %w", err)
	}
	ch := chapter.Chapter{
		ID:     chapterID,
		BookID: bookID,
		Title:  input.Title,
	}
	if err := ch.Validate(); err != nil {
		return ChapterWithEvents{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	events := make([]event.Event, 0, len(input.Events))
	for _, contents := range input.Events {
		eventID, err := s.idGen.NewID()
		if err != nil {
			return ChapterWithEvents{}, fmt.Errorf("generate event id: %w", err)
		}
		events = append(events, event.Event{
			ID:        eventID,
			ChapterID: chapterID,
			BookID:    bookID,
			Contents:  contents,
		})
	}

	if err := s.chapterRepo.Create(ctx, ch); err != nil {
		return ChapterWithEvents{}, fmt.Errorf("create chapter: %w", err)
	}
	if err := s.eventRepo.CreateAll(ctx, events); err != nil {
		return ChapterWithEvents{}, fmt.Errorf("create events: %w", err)
	}

	s.logger.InfoContext(ctx, "chapter created",
		"book_id", bookID,
		"chapter_id", chapterID,
		"event_count", len(events),
	)

	return ChapterWithEvents{Chapter: ch, Events: events}, nil
}

// UpdateStatus toggles the submission and visibility gates.
func (s *ChapterService) UpdateStatus(ctx context.Context, bookID, chapterID string, p user.Principal, isOpen, isVisible bool) error {
	ctx, span := startUsecaseSpan(ctx, "ChapterService.UpdateStatus")
	defer span.End()

	ch, err := s.adminChapter(ctx, bookID, chapterID, p)
	if err != nil {
		return err
	}

	if err := s.chapterRepo.UpdateStatus(ctx, ch.ID, isOpen, isVisible); err != nil {
		return fmt.Errorf("update chapter status: %w", err)
	}

	s.logger.InfoContext(ctx, "chapter status updated",
		"chapter_id", ch.ID,
		"is_open", isOpen,
		"is_visible", isVisible,
	)

	return nil
}

// DeleteChapter removes a chapter with its events and picks in one
// transaction.
func (s *ChapterService) DeleteChapter(ctx context.Context, bookID, chapterID string, p user.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "ChapterService.DeleteChapter")
	defer span.End()

	ch, err := s.adminChapter(ctx, bookID, chapterID, p)
	if err != nil {
		return err
	}

	if err := s.chapterRepo.Delete(ctx, ch.ID); err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}

	s.logger.InfoContext(ctx, "chapter deleted",
		"book_id", bookID,
		"chapter_id", ch.ID,
	)

	return nil
}

// ListChapters returns the chapters the caller may see.
func (s *ChapterService) ListChapters(ctx context.Context, bookID string, p user.Principal) ([]chapter.Chapter, error) {
	ctx, span := startUsecaseSpan(ctx, "ChapterService.ListChapters")
	defer span.End()

	bookID = strings.TrimSpace(bookID)
	sub, err := s.gate.subscription(ctx, bookID, p)
	if err != nil {
		return nil, err
	}

	chapters, err := s.chapterRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	visible := make([]chapter.Chapter, 0, len(chapters))
	for _, ch := range chapters {
		if sub.CanViewChapter(ch.ID, ch.IsVisible) {
			visible = append(visible, ch)
		}
	}

	return visible, nil
}

// GetChapter returns a chapter with its events, if the caller may see it.
func (s *ChapterService) GetChapter(ctx context.Context, bookID, chapterID string, p user.Principal) (ChapterWithEvents, error) {
	ctx, span := startUsecaseSpan(ctx, "ChapterService.GetChapter")
	defer span.End()

	bookID = strings.TrimSpace(bookID)
	chapterID = strings.TrimSpace(chapterID)

	ch, exists, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return ChapterWithEvents{}, fmt.Errorf("get chapter: %w", err)
	}
	if !exists || ch.BookID != bookID {
		return ChapterWithEvents{}, fmt.Errorf("%w: chapter", ErrNotFound)
	}
	if _, err := s.gate.requireChapterView(ctx, ch, p); err != nil {
		return ChapterWithEvents{}, err
	}

	events, err := s.eventRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return ChapterWithEvents{}, fmt.Errorf("list chapter events: %w", err)
	}

	return ChapterWithEvents{Chapter: ch, Events: events}, nil
}

func (s *ChapterService) adminChapter(ctx context.Context, bookID, chapterID string, p user.Principal) (chapter.Chapter, error) {
	bookID = strings.TrimSpace(bookID)
	chapterID = strings.TrimSpace(chapterID)
	if _, err := s.gate.requireAdmin(ctx, bookID, p); err != nil {
		return chapter.Chapter{}, err
	}

	ch, exists, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return chapter.Chapter{}, fmt.Errorf("get chapter: %w", err)
	}
	if !exists || ch.BookID != bookID {
		return chapter.Chapter{}, fmt.Errorf("%w: chapter", ErrNotFound)
	}

	return ch, nil
}

// validateTeamRefs checks that every spread references known teams.
func (s *ChapterService) validateTeamRefs(ctx context.Context, contents []event.Contents) error {
	idSet := make(map[string]struct{})
	for _, c := range contents {
		if c.SpreadGroup == nil {
			continue
		}
		for _, spread := range c.SpreadGroup.Spreads {
			idSet[spread.HomeID] = struct{}{}
			idSet[spread.AwayID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	teams, err := s.teamRepo.ListByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	if len(teams) != len(ids) {
		known := make(map[string]struct{}, len(teams))
		for _, t := range teams {
			known[t.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := known[id]; !ok {
				return fmt.Errorf("%w: unknown team %s", ErrInvalidInput, id)
			}
		}
	}

	return nil
}

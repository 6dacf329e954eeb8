package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/chapter"
	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/domain/grading"
	"github.com/pickemhq/pickem/internal/domain/pick"
	"github.com/pickemhq/pickem/internal/domain/user"
	"github.com/pickemhq/pickem/internal/platform/logging"
)

const regradeWorkers = 4

// StandingRow is one line of a totals or leaderboard listing.
type StandingRow struct {
	UserID      string
	DisplayName string
	Total       int
}

// SpreadCell is one spread's worth of a table cell.
type SpreadCell struct {
	Selection event.Side
	Wager     int
	Status    grading.Status
}

// InputCell is a free-text question's table cell.
type InputCell struct {
	Answer string
	Wager  int
	Status grading.Status
}

// TableCell reports one user's pick on one event. Spread-group events fill
// Spreads; question events fill Input.
type TableCell struct {
	EventID string
	Spreads []SpreadCell
	Input   *InputCell
}

// TableRow is one user's row across a chapter's events.
type TableRow struct {
	UserID      string
	DisplayName string
	Cells       []TableCell
}

// ChapterTable is the users-by-events pick matrix for one chapter.
type ChapterTable struct {
	Events []event.Event
	Rows   []TableRow
}

// StandingsService aggregates graded picks into totals, leaderboards, and
// the chapter pick table.
type StandingsService struct {
	gate        memberGate
	bookRepo    book.Repository
	chapterRepo chapter.Repository
	eventRepo   event.Repository
	pickRepo    pick.Repository
	gradingRepo grading.Repository
	userRepo    user.Repository
	logger      *logging.Logger
}

func NewStandingsService(
	bookRepo book.Repository,
	chapterRepo chapter.Repository,
	eventRepo event.Repository,
	pickRepo pick.Repository,
	gradingRepo grading.Repository,
	userRepo user.Repository,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		gate:        memberGate{bookRepo: bookRepo},
		bookRepo:    bookRepo,
		chapterRepo: chapterRepo,
		eventRepo:   eventRepo,
		pickRepo:    pickRepo,
		gradingRepo: gradingRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// ChapterTotals sums each member's points for one chapter. Every member of
// the book appears, including those who never picked.
func (s *StandingsService) ChapterTotals(ctx context.Context, bookID, chapterID string, p user.Principal) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.ChapterTotals")
	defer span.End()

	ch, err := s.viewableChapter(ctx, bookID, chapterID, p)
	if err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.ListByChapter(ctx, ch.ID)
	if err != nil {
		return nil, fmt.Errorf("list chapter picks: %w", err)
	}

	return s.standings(ctx, bookID, picks)
}

// BookLeaderboard sums each member's points across every chapter of the
// book.
func (s *StandingsService) BookLeaderboard(ctx context.Context, bookID string, p user.Principal) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.BookLeaderboard")
	defer span.End()

	if _, err := s.gate.subscription(ctx, strings.TrimSpace(bookID), p); err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list book picks: %w", err)
	}

	return s.standings(ctx, bookID, picks)
}

// ChapterTable builds the users-by-events matrix for a chapter. Events,
// picks, and members load in parallel.
func (s *StandingsService) ChapterTable(ctx context.Context, bookID, chapterID string, p user.Principal) (ChapterTable, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.ChapterTable")
	defer span.End()

	ch, err := s.viewableChapter(ctx, bookID, chapterID, p)
	if err != nil {
		return ChapterTable{}, err
	}

	var (
		events []event.Event
		picks  []pick.Pick
		subs   []book.Subscription
	)
	loaders := pool.New().WithContext(ctx).WithCancelOnError()
	loaders.Go(func(ctx context.Context) error {
		var err error
		events, err = s.eventRepo.ListByChapter(ctx, ch.ID)
		return err
	})
	loaders.Go(func(ctx context.Context) error {
		var err error
		picks, err = s.pickRepo.ListByChapter(ctx, ch.ID)
		return err
	})
	loaders.Go(func(ctx context.Context) error {
		var err error
		subs, err = s.bookRepo.ListSubscriptions(ctx, bookID)
		return err
	})
	if err := loaders.Wait(); err != nil {
		return ChapterTable{}, fmt.Errorf("load chapter table: %w", err)
	}

	members, err := s.memberRows(ctx, subs)
	if err != nil {
		return ChapterTable{}, err
	}

	pickByUserEvent := make(map[string]map[string]pick.Pick, len(members))
	for _, pk := range picks {
		if pickByUserEvent[pk.UserID] == nil {
			pickByUserEvent[pk.UserID] = make(map[string]pick.Pick)
		}
		pickByUserEvent[pk.UserID][pk.EventID] = pk
	}

	rows := make([]TableRow, 0, len(members))
	for _, member := range members {
		row := TableRow{
			UserID:      member.UserID,
			DisplayName: member.DisplayName,
			Cells:       make([]TableCell, 0, len(events)),
		}
		for _, ev := range events {
			pk, picked := pickByUserEvent[member.UserID][ev.ID]
			row.Cells = append(row.Cells, buildCell(ev, pk, picked))
		}
		rows = append(rows, row)
	}
	sortStandingRowsByName(rows)

	return ChapterTable{Events: events, Rows: rows}, nil
}

// RecalculateBook re-runs the grader over every chapter of a book. Used
// after fixing recorded answers; chapters grade concurrently on a bounded
// worker pool and the pass is idempotent.
func (s *StandingsService) RecalculateBook(ctx context.Context, bookID string, p user.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.RecalculateBook")
	defer span.End()

	bookID = strings.TrimSpace(bookID)
	if _, err := s.gate.requireAdmin(ctx, bookID, p); err != nil {
		return err
	}

	chapters, err := s.chapterRepo.ListByBook(ctx, bookID)
	if err != nil {
		return fmt.Errorf("list book chapters: %w", err)
	}

	workers, err := ants.NewPool(regradeWorkers)
	if err != nil {
		return fmt.Errorf("create regrade pool: %w", err)
	}
	defer workers.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, ch := range chapters {
		ch := ch
		wg.Add(1)
		submitErr := workers.Submit(func() {
			defer wg.Done()
			if err := s.regradeChapter(ctx, ch.ID); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("regrade chapter %s: %w", ch.ID, err)
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("submit regrade task: %w", submitErr)
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	s.logger.InfoContext(ctx, "book regraded",
		"book_id", bookID,
		"chapter_count", len(chapters),
	)

	return nil
}

func (s *StandingsService) regradeChapter(ctx context.Context, chapterID string) error {
	events, err := s.eventRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	picks, err := s.pickRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return fmt.Errorf("list picks: %w", err)
	}

	updates := grading.GradeChapter(events, picks)
	if len(updates) == 0 {
		return nil
	}
	if err := s.gradingRepo.ApplyAnswers(ctx, events, updates); err != nil {
		return fmt.Errorf("apply points: %w", err)
	}

	return nil
}

func (s *StandingsService) viewableChapter(ctx context.Context, bookID, chapterID string, p user.Principal) (chapter.Chapter, error) {
	bookID = strings.TrimSpace(bookID)
	chapterID = strings.TrimSpace(chapterID)

	ch, exists, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return chapter.Chapter{}, fmt.Errorf("get chapter: %w", err)
	}
	if !exists || ch.BookID != bookID {
		return chapter.Chapter{}, fmt.Errorf("%w: chapter", ErrNotFound)
	}
	if _, err := s.gate.requireChapterView(ctx, ch, p); err != nil {
		return chapter.Chapter{}, err
	}

	return ch, nil
}

func (s *StandingsService) standings(ctx context.Context, bookID string, picks []pick.Pick) ([]StandingRow, error) {
	subs, err := s.bookRepo.ListSubscriptions(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	rows, err := s.memberRows(ctx, subs)
	if err != nil {
		return nil, err
	}

	totalByUser := make(map[string]int, len(rows))
	for _, pk := range picks {
		if pk.Points == nil {
			continue
		}
		totalByUser[pk.UserID] += *pk.Points
	}
	for i := range rows {
		rows[i].Total = totalByUser[rows[i].UserID]
	}

	sortStandings(rows)
	return rows, nil
}

// memberRows resolves display names for every non-unauthorized member.
func (s *StandingsService) memberRows(ctx context.Context, subs []book.Subscription) ([]StandingRow, error) {
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		if sub.Role == book.RoleUnauthorized {
			continue
		}
		ids = append(ids, sub.UserID)
	}

	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	nameByID := make(map[string]string, len(users))
	for _, u := range users {
		nameByID[u.ID] = u.DisplayName
	}

	rows := make([]StandingRow, 0, len(ids))
	for _, id := range ids {
		name := nameByID[id]
		if name == "" {
			name = id
		}
		rows = append(rows, StandingRow{UserID: id, DisplayName: name})
	}

	return rows, nil
}

// sortStandings orders by total descending, then display name ascending
// case-insensitively, then user id for full stability.
func sortStandings(rows []StandingRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		ni, nj := strings.ToLower(rows[i].DisplayName), strings.ToLower(rows[j].DisplayName)
		if ni != nj {
			return ni < nj
		}
		return rows[i].UserID < rows[j].UserID
	})
}

func sortStandingRowsByName(rows []TableRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		ni, nj := strings.ToLower(rows[i].DisplayName), strings.ToLower(rows[j].DisplayName)
		if ni != nj {
			return ni < nj
		}
		return rows[i].UserID < rows[j].UserID
	})
}

// buildCell renders one user/event intersection of the chapter table.
func buildCell(ev event.Event, pk pick.Pick, picked bool) TableCell {
	cell := TableCell{EventID: ev.ID}

	switch ev.Kind() {
	case event.KindSpreadGroup:
		group := ev.Contents.SpreadGroup
		cell.Spreads = make([]SpreadCell, 0, group.Arity())
		for i, spread := range group.Spreads {
			if !picked || pk.Contents.SpreadGroup == nil || i >= len(pk.Contents.SpreadGroup.Selections) {
				cell.Spreads = append(cell.Spreads, SpreadCell{Status: grading.StatusMissing})
				continue
			}
			selection := pk.Contents.SpreadGroup.Selections[i]
			cell.Spreads = append(cell.Spreads, SpreadCell{
				Selection: selection,
				Wager:     pk.Contents.SpreadGroup.Wagers[i],
				Status:    grading.SpreadStatus(spread.Answer, selection),
			})
		}
	case event.KindUserInput:
		if !picked || pk.Contents.UserInput == nil {
			cell.Input = &InputCell{Status: grading.StatusMissing}
			break
		}
		cell.Input = &InputCell{
			Answer: pk.Contents.UserInput.Answer,
			Wager:  pk.Contents.UserInput.Wager,
			Status: grading.UserInputStatus(*ev.Contents.UserInput, pk.Contents.UserInput.Answer),
		}
	}

	return cell
}

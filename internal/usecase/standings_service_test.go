package usecase

import (
	"testing"

	"github.com/pickemhq/pickem/internal/domain/grading"
	"github.com/pickemhq/pickem/internal/infrastructure/repository/memory"
)

func newStandingsService(r repos) *StandingsService {
	return NewStandingsService(r.books, r.chapters, r.events, r.picks, r.grading, r.users, nopLogger())
}

// gradeWeek1 submits for alice and Bob, records answers, and leaves alice on
// 9 points (5 + 4) and Bob on 5 (5 + 0).
func gradeWeek1(t *testing.T, r repos) {
	t.Helper()
	ctx := t.Context()

	submissions := newSubmissionService(r)
	if err := submissions.Submit(ctx, memory.SeedBookID, memory.SeedChapterID, principal("u-alice"), validSubmission()); err != nil {
		t.Fatalf("submit alice: %v", err)
	}
	bobSub := validSubmission()
	bobSub[1].UserInput = "Josh Allen"
	if err := submissions.Submit(ctx, memory.SeedBookID, memory.SeedChapterID, principal("u-bob"), bobSub); err != nil {
		t.Fatalf("submit bob: %v", err)
	}

	answers := newAnswerService(r)
	if err := answers.RecordAnswers(ctx, memory.SeedBookID, memory.SeedChapterID, principal(memory.SeedOwnerID), week1Answers()); err != nil {
		t.Fatalf("record answers: %v", err)
	}
}

func TestStandingsService_ChapterTotals(t *testing.T) {
	r := newSeededRepos(t)
	gradeWeek1(t, r)
	service := newStandingsService(r)

	rows, err := service.ChapterTotals(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal("u-alice"))
	if err != nil {
		t.Fatalf("chapter totals: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected every member in totals, got %d rows", len(rows))
	}
	if rows[0].UserID != "u-alice" || rows[0].Total != 9 {
		t.Fatalf("row 0 = %+v, want alice on 9", rows[0])
	}
	if rows[1].UserID != "u-bob" || rows[1].Total != 5 {
		t.Fatalf("row 1 = %+v, want Bob on 5", rows[1])
	}
	if rows[2].Total != 0 {
		t.Fatalf("member without picks should total 0, got %+v", rows[2])
	}
}

func TestStandingsService_BookLeaderboard_TieBreak(t *testing.T) {
	r := newSeededRepos(t)
	service := newStandingsService(r)

	// Equal totals order case-insensitively by display name: alice before Bob.
	rows, err := service.BookLeaderboard(t.Context(), memory.SeedBookID, principal("u-bob"))
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	posOf := func(userID string) int {
		for i, row := range rows {
			if row.UserID == userID {
				return i
			}
		}
		t.Fatalf("user %s missing from leaderboard", userID)
		return -1
	}
	if posOf("u-alice") > posOf("u-bob") {
		t.Fatalf("tie-break put Bob before alice: %+v", rows)
	}
}

func TestStandingsService_ChapterTable(t *testing.T) {
	r := newSeededRepos(t)
	gradeWeek1(t, r)
	service := newStandingsService(r)

	table, err := service.ChapterTable(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal(memory.SeedOwnerID))
	if err != nil {
		t.Fatalf("chapter table: %v", err)
	}
	if len(table.Events) != 2 || len(table.Rows) != 3 {
		t.Fatalf("table shape %dx%d, want 2 events x 3 rows", len(table.Events), len(table.Rows))
	}

	cellFor := func(userID, eventID string) TableCell {
		for _, row := range table.Rows {
			if row.UserID != userID {
				continue
			}
			for _, cell := range row.Cells {
				if cell.EventID == eventID {
					return cell
				}
			}
		}
		t.Fatalf("cell %s/%s not found", userID, eventID)
		return TableCell{}
	}

	spreadCell := cellFor("u-alice", "ev-week1-games")
	wantStatuses := []grading.Status{grading.StatusCorrect, grading.StatusIncorrect, grading.StatusPush}
	for i, want := range wantStatuses {
		if spreadCell.Spreads[i].Status != want {
			t.Fatalf("spread %d status = %s, want %s", i, spreadCell.Spreads[i].Status, want)
		}
	}

	inputCell := cellFor("u-bob", "ev-week1-mvp")
	if inputCell.Input == nil || inputCell.Input.Status != grading.StatusIncorrect {
		t.Fatalf("bob's question cell = %+v, want incorrect", inputCell.Input)
	}

	ownerCell := cellFor(memory.SeedOwnerID, "ev-week1-games")
	for i, sc := range ownerCell.Spreads {
		if sc.Status != grading.StatusMissing {
			t.Fatalf("owner spread %d status = %s, want missing", i, sc.Status)
		}
	}
}

func TestStandingsService_ChapterTable_UngradedStatuses(t *testing.T) {
	r := newSeededRepos(t)
	submissions := newSubmissionService(r)
	if err := submissions.Submit(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal("u-alice"), validSubmission()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	service := newStandingsService(r)

	table, err := service.ChapterTable(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal("u-alice"))
	if err != nil {
		t.Fatalf("chapter table: %v", err)
	}

	for _, row := range table.Rows {
		if row.UserID != "u-alice" {
			continue
		}
		for _, cell := range row.Cells {
			for _, sc := range cell.Spreads {
				if sc.Status != grading.StatusUngraded {
					t.Fatalf("spread status = %s before answers", sc.Status)
				}
			}
			if cell.Input != nil && cell.Input.Status != grading.StatusUngraded {
				t.Fatalf("question status = %s before answers", cell.Input.Status)
			}
		}
	}
}

func TestStandingsService_RecalculateBook(t *testing.T) {
	r := newSeededRepos(t)
	gradeWeek1(t, r)
	service := newStandingsService(r)
	ctx := t.Context()

	before, err := service.BookLeaderboard(ctx, memory.SeedBookID, principal("u-alice"))
	if err != nil {
		t.Fatalf("leaderboard before: %v", err)
	}

	if err := service.RecalculateBook(ctx, memory.SeedBookID, principal(memory.SeedOwnerID)); err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	after, err := service.BookLeaderboard(ctx, memory.SeedBookID, principal("u-alice"))
	if err != nil {
		t.Fatalf("leaderboard after: %v", err)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("recalculation changed standings: %+v -> %+v", before[i], after[i])
		}
	}
}

func TestStandingsService_VisibilityGate(t *testing.T) {
	r := newSeededRepos(t)
	if err := r.chapters.UpdateStatus(t.Context(), memory.SeedChapterID, true, false); err != nil {
		t.Fatalf("hide chapter: %v", err)
	}
	service := newStandingsService(r)

	if _, err := service.ChapterTotals(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal("u-alice")); err == nil {
		t.Fatal("participant saw a hidden chapter's totals")
	}
	if _, err := service.ChapterTotals(t.Context(), memory.SeedBookID, memory.SeedChapterID, principal(memory.SeedOwnerID)); err != nil {
		t.Fatalf("admin refused on hidden chapter: %v", err)
	}
}

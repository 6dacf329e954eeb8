package grading

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/domain/pick"
)

// NormalizeAnswer prepares a free-text answer for comparison: trim, then
// Unicode NFC. Comparison stays case-sensitive.
func NormalizeAnswer(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ScoreSpread awards one spread of a pick: the wager on a matching side, the
// wager on a push regardless of the picked side, zero otherwise.
func ScoreSpread(answer event.Outcome, selection event.Side, wager int) int {
	if answer == event.OutcomePush {
		return wager
	}
	if string(answer) == string(selection) {
		return wager
	}
	return 0
}

// ScoreUserInput awards the event's points on an exact normalized match
// against any acceptable answer.
func ScoreUserInput(ev event.UserInput, answer string) int {
	normalized := NormalizeAnswer(answer)
	for _, acceptable := range ev.AcceptableAnswers {
		if NormalizeAnswer(acceptable) == normalized {
			return ev.Points
		}
	}
	return 0
}

// GradePick computes a pick's points against its event. The second return is
// false when the event is not fully graded yet; the pick is left untouched
// in that case.
func GradePick(ev event.Event, p pick.Pick) (int, bool) {
	switch ev.Kind() {
	case event.KindSpreadGroup:
		if p.Contents.SpreadGroup == nil {
			return 0, false
		}
		group := ev.Contents.SpreadGroup
		total := 0
		for i, spread := range group.Spreads {
			if spread.Answer == nil {
				return 0, false
			}
			if i >= len(p.Contents.SpreadGroup.Selections) {
				return 0, false
			}
			total += ScoreSpread(*spread.Answer, p.Contents.SpreadGroup.Selections[i], p.Contents.SpreadGroup.Wagers[i])
		}
		return total, true
	case event.KindUserInput:
		if p.Contents.UserInput == nil {
			return 0, false
		}
		if !ev.Contents.UserInput.Graded() {
			return 0, false
		}
		return ScoreUserInput(*ev.Contents.UserInput, p.Contents.UserInput.Answer), true
	default:
		return 0, false
	}
}

// GradeChapter grades every stored pick against its event. It is a pure
// function of its inputs: no rows are created for missing picks, ungraded
// events produce no updates, and running it twice yields identical output.
func GradeChapter(events []event.Event, picks []pick.Pick) []pick.PointsUpdate {
	byID := make(map[string]event.Event, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}

	updates := make([]pick.PointsUpdate, 0, len(picks))
	for _, p := range picks {
		ev, ok := byID[p.EventID]
		if !ok {
			continue
		}
		points, graded := GradePick(ev, p)
		if !graded {
			continue
		}
		updates = append(updates, pick.PointsUpdate{
			EventID: p.EventID,
			UserID:  p.UserID,
			Points:  points,
		})
	}

	return updates
}

package grading

import "github.com/pickemhq/pickem/internal/domain/event"

// Status is a table cell's grading state for one spread or question.
type Status string

const (
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
	StatusPush      Status = "push"
	StatusUngraded  Status = "ungraded"
	StatusMissing   Status = "missing"
)

// SpreadStatus derives a cell status from the stored answer and the picked
// side. A nil answer means the spread is ungraded.
func SpreadStatus(answer *event.Outcome, selection event.Side) Status {
	if answer == nil {
		return StatusUngraded
	}
	switch {
	case *answer == event.OutcomePush:
		return StatusPush
	case string(*answer) == string(selection):
		return StatusCorrect
	default:
		return StatusIncorrect
	}
}

// UserInputStatus derives a cell status for a free-text question.
func UserInputStatus(ev event.UserInput, answer string) Status {
	if !ev.Graded() {
		return StatusUngraded
	}
	if ScoreUserInput(ev, answer) > 0 {
		return StatusCorrect
	}
	return StatusIncorrect
}

package pick

import (
	"fmt"

	"github.com/pickemhq/pickem/internal/domain/event"
)

// SpreadGroupPick covers every spread in a group, index-aligned with the
// event's spread order. Wagers are a permutation of 1..len(Selections).
type SpreadGroupPick struct {
	Selections []event.Side
	Wagers     []int
}

// UserInputPick answers a free-text question. Wager is copied from the
// event's points at submission time.
type UserInputPick struct {
	Answer string
	Wager  int
}

// Contents is the tagged sum of pick variants. Exactly one field is set, and
// the variant must match the event's kind.
type Contents struct {
	SpreadGroup *SpreadGroupPick
	UserInput   *UserInputPick
}

func (c Contents) Kind() event.Kind {
	if c.SpreadGroup != nil {
		return event.KindSpreadGroup
	}
	return event.KindUserInput
}

// Pick is one user's answer to one event. Points stays nil until grading.
type Pick struct {
	BookID    string
	ChapterID string
	EventID   string
	UserID    string
	Contents  Contents
	Points    *int
}

// MatchesEvent checks the pick's shape against the event it answers.
func (c Contents) MatchesEvent(ev event.Event) error {
	switch ev.Kind() {
	case event.KindSpreadGroup:
		if c.SpreadGroup == nil {
			return fmt.Errorf("%w: spread group event needs a spread group pick", ErrBadPayload)
		}
		arity := ev.Contents.SpreadGroup.Arity()
		if len(c.SpreadGroup.Selections) != arity || len(c.SpreadGroup.Wagers) != arity {
			return fmt.Errorf("%w: pick covers %d spreads, event has %d", ErrBadPayload, len(c.SpreadGroup.Selections), arity)
		}
		return ValidateWagers(c.SpreadGroup.Wagers)
	case event.KindUserInput:
		if c.UserInput == nil {
			return fmt.Errorf("%w: user input event needs a user input pick", ErrBadPayload)
		}
		if c.UserInput.Answer == "" {
			return fmt.Errorf("%w: empty answer", ErrBadPayload)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown event kind %q", ErrBadPayload, ev.Kind())
	}
}

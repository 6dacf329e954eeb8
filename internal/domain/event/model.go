package event

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates the event contents variants.
type Kind string

const (
	KindSpreadGroup Kind = "spread_group"
	KindUserInput   Kind = "user_input"
)

// Side is a pickable side of a spread. Picks never carry "push".
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Outcome is a graded spread result; unlike Side it includes "push".
type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeAway Outcome = "away"
	OutcomePush Outcome = "push"
)

var (
	ErrUnknownSide    = errors.New("unknown side")
	ErrUnknownOutcome = errors.New("unknown outcome")
)

func ParseSide(v string) (Side, error) {
	switch Side(strings.TrimSpace(v)) {
	case SideHome:
		return SideHome, nil
	case SideAway:
		return SideAway, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSide, v)
	}
}

func ParseOutcome(v string) (Outcome, error) {
	switch Outcome(strings.TrimSpace(v)) {
	case OutcomeHome:
		return OutcomeHome, nil
	case OutcomeAway:
		return OutcomeAway, nil
	case OutcomePush:
		return OutcomePush, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, v)
	}
}

// Spread is one game inside a spread group. HomeLine is the handicap applied
// to the home team, in half points.
type Spread struct {
	HomeID   string
	AwayID   string
	HomeLine Line
	Notes    string
	Answer   *Outcome
}

// SpreadGroup is an ordered sequence of spreads. The order is the pick index
// axis and must be preserved from storage to presentation.
type SpreadGroup struct {
	Spreads []Spread
}

// Arity is the number of spreads in the group; wagers on the group are a
// permutation of 1..Arity.
func (g SpreadGroup) Arity() int {
	return len(g.Spreads)
}

// UserInput is a free-text question worth a fixed number of points.
// AcceptableAnswers is nil until the admin records answers; an empty non-nil
// set means the question was graded and nobody gets points.
type UserInput struct {
	Title             string
	Description       string
	Points            int
	AcceptableAnswers []string
}

// Graded reports whether answers were recorded for the question.
func (u UserInput) Graded() bool {
	return u.AcceptableAnswers != nil
}

// Contents is the tagged sum of event variants. Exactly one field is set.
type Contents struct {
	SpreadGroup *SpreadGroup
	UserInput   *UserInput
}

func (c Contents) Kind() Kind {
	if c.SpreadGroup != nil {
		return KindSpreadGroup
	}
	return KindUserInput
}

// Event is a scorable unit inside a chapter.
type Event struct {
	ID        string
	ChapterID string
	BookID    string
	Contents  Contents
}

func (e Event) Kind() Kind {
	return e.Contents.Kind()
}

func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.ChapterID == "" {
		return fmt.Errorf("event chapter id is required")
	}
	if e.BookID == "" {
		return fmt.Errorf("event book id is required")
	}
	return e.Contents.Validate()
}

func (c Contents) Validate() error {
	if c.SpreadGroup != nil && c.UserInput != nil {
		return fmt.Errorf("event contents must have exactly one variant")
	}

	switch {
	case c.SpreadGroup != nil:
		if len(c.SpreadGroup.Spreads) == 0 {
			return fmt.Errorf("spread group requires at least one spread")
		}
		for i, s := range c.SpreadGroup.Spreads {
			if strings.TrimSpace(s.HomeID) == "" || strings.TrimSpace(s.AwayID) == "" {
				return fmt.Errorf("spread %d: home and away team ids are required", i)
			}
			if s.HomeID == s.AwayID {
				return fmt.Errorf("spread %d: home and away teams must differ", i)
			}
			if s.Answer != nil {
				if _, err := ParseOutcome(string(*s.Answer)); err != nil {
					return fmt.Errorf("spread %d: %w", i, err)
				}
			}
		}
		return nil
	case c.UserInput != nil:
		if strings.TrimSpace(c.UserInput.Title) == "" {
			return fmt.Errorf("user input title is required")
		}
		if c.UserInput.Points < 1 {
			return fmt.Errorf("user input points must be >= 1")
		}
		return nil
	default:
		return fmt.Errorf("event contents are required")
	}
}

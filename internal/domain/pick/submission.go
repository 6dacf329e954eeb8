package pick

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/pickemhq/pickem/internal/domain/event"
)

// Submission entry types on the wire.
const (
	EntryTypeSpreadGroup = "spread-group"
	EntryTypeUserInput   = "user-input"
)

// WagerValue accepts a JSON integer or a decimal string, and must land on a
// whole number either way ("3" and 3 and "3.0" all decode to 3).
type WagerValue int

func (v *WagerValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" || s == "null" {
		return fmt.Errorf("%w: missing num-points", ErrBadPayload)
	}

	if n, err := strconv.Atoi(s); err == nil {
		*v = WagerValue(n)
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: num-points %q is not a number", ErrBadPayload, s)
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("%w: num-points %q is not an integer", ErrBadPayload, s)
	}
	*v = WagerValue(int(f))
	return nil
}

// SpreadEntry is one spread's worth of a submission, index-aligned with the
// event's spreads.
type SpreadEntry struct {
	Selection string     `json:"selection"`
	NumPoints WagerValue `json:"num-points"`
}

// Entry is the per-event payload of a submission, tagged by Type.
type Entry struct {
	Type      string        `json:"type"`
	EventID   string        `json:"event-id"`
	Spreads   []SpreadEntry `json:"spreads,omitempty"`
	UserInput string        `json:"user-input,omitempty"`
}

// Submission is the ordered list of per-event payloads a user sends for a
// chapter, expected in chapter-event order.
type Submission []Entry

// DecodeSubmission parses the wire form of a chapter submission.
func DecodeSubmission(data []byte) (Submission, error) {
	var sub Submission
	if err := sonic.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return sub, nil
}

// Contents converts a wire entry into pick contents for the given event,
// enforcing the entry/event shape rules. The returned contents still need
// MatchesEvent for the permutation check.
func (e Entry) Contents(ev event.Event) (Contents, error) {
	switch e.Type {
	case EntryTypeSpreadGroup:
		if ev.Kind() != event.KindSpreadGroup {
			return Contents{}, fmt.Errorf("%w: entry type %q for %s event", ErrBadPayload, e.Type, ev.Kind())
		}
		p := SpreadGroupPick{
			Selections: make([]event.Side, 0, len(e.Spreads)),
			Wagers:     make([]int, 0, len(e.Spreads)),
		}
		for i, s := range e.Spreads {
			side, err := event.ParseSide(s.Selection)
			if err != nil {
				return Contents{}, fmt.Errorf("%w: spread %d: %v", ErrBadPayload, i, err)
			}
			p.Selections = append(p.Selections, side)
			p.Wagers = append(p.Wagers, int(s.NumPoints))
		}
		return Contents{SpreadGroup: &p}, nil
	case EntryTypeUserInput:
		if ev.Kind() != event.KindUserInput {
			return Contents{}, fmt.Errorf("%w: entry type %q for %s event", ErrBadPayload, e.Type, ev.Kind())
		}
		answer := strings.TrimSpace(e.UserInput)
		if answer == "" {
			return Contents{}, fmt.Errorf("%w: empty answer", ErrBadPayload)
		}
		if len(answer) > MaxAnswerLength {
			return Contents{}, fmt.Errorf("%w: answer exceeds %d bytes", ErrBadPayload, MaxAnswerLength)
		}
		return Contents{UserInput: &UserInputPick{Answer: answer, Wager: ev.Contents.UserInput.Points}}, nil
	default:
		return Contents{}, fmt.Errorf("%w: unknown entry type %q", ErrBadPayload, e.Type)
	}
}

package event

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Wire shapes. Spread groups serialize as an ordered array; order is the pick
// index axis and is preserved through storage.
type spreadWire struct {
	HomeID     string   `json:"home_id"`
	AwayID     string   `json:"away_id"`
	HomeSpread Line     `json:"home_spread"`
	Notes      string   `json:"notes,omitempty"`
	Answer     *Outcome `json:"answer,omitempty"`
}

type userInputWire struct {
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Points            int       `json:"points"`
	AcceptableAnswers *[]string `json:"acceptable_answers,omitempty"`
}

type contentsWire struct {
	SpreadGroup *[]spreadWire  `json:"spread_group,omitempty"`
	UserInput   *userInputWire `json:"user_input,omitempty"`
}

func (c Contents) MarshalJSON() ([]byte, error) {
	var wire contentsWire

	switch {
	case c.SpreadGroup != nil:
		spreads := make([]spreadWire, 0, len(c.SpreadGroup.Spreads))
		for _, s := range c.SpreadGroup.Spreads {
			w := spreadWire{
				HomeID:     s.HomeID,
				AwayID:     s.AwayID,
				HomeSpread: s.HomeLine,
				Notes:      s.Notes,
			}
			if s.Answer != nil {
				answer := *s.Answer
				w.Answer = &answer
			}
			spreads = append(spreads, w)
		}
		wire.SpreadGroup = &spreads
	case c.UserInput != nil:
		ui := userInputWire{
			Title:       c.UserInput.Title,
			Description: c.UserInput.Description,
			Points:      c.UserInput.Points,
		}
		if c.UserInput.AcceptableAnswers != nil {
			answers := append([]string(nil), c.UserInput.AcceptableAnswers...)
			if len(answers) == 0 {
				answers = []string{}
			}
			ui.AcceptableAnswers = &answers
		}
		wire.UserInput = &ui
	default:
		return nil, fmt.Errorf("event contents are required")
	}

	return sonic.Marshal(wire)
}

func (c *Contents) UnmarshalJSON(data []byte) error {
	var wire contentsWire
	if err := sonic.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode event contents: %w", err)
	}
	if wire.SpreadGroup != nil && wire.UserInput != nil {
		return fmt.Errorf("event contents must have exactly one variant")
	}

	switch {
	case wire.SpreadGroup != nil:
		group := SpreadGroup{Spreads: make([]Spread, 0, len(*wire.SpreadGroup))}
		for i, w := range *wire.SpreadGroup {
			s := Spread{
				HomeID:   w.HomeID,
				AwayID:   w.AwayID,
				HomeLine: w.HomeSpread,
				Notes:    w.Notes,
			}
			if w.Answer != nil {
				answer, err := ParseOutcome(string(*w.Answer))
				if err != nil {
					return fmt.Errorf("spread %d: %w", i, err)
				}
				s.Answer = &answer
			}
			group.Spreads = append(group.Spreads, s)
		}
		*c = Contents{SpreadGroup: &group}
		return nil
	case wire.UserInput != nil:
		ui := UserInput{
			Title:       wire.UserInput.Title,
			Description: wire.UserInput.Description,
			Points:      wire.UserInput.Points,
		}
		if wire.UserInput.AcceptableAnswers != nil {
			ui.AcceptableAnswers = append([]string{}, *wire.UserInput.AcceptableAnswers...)
		}
		*c = Contents{UserInput: &ui}
		return nil
	default:
		return fmt.Errorf("event contents are required")
	}
}

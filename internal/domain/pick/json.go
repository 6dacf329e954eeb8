package pick

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/pickemhq/pickem/internal/domain/event"
)

type spreadGroupPickWire struct {
	Selections []event.Side `json:"selections"`
	Wagers     []int        `json:"wagers"`
}

type userInputPickWire struct {
	Answer string `json:"answer"`
	Wager  int    `json:"wager"`
}

type pickContentsWire struct {
	SpreadGroup *spreadGroupPickWire `json:"spread_group,omitempty"`
	UserInput   *userInputPickWire   `json:"user_input,omitempty"`
}

func (c Contents) MarshalJSON() ([]byte, error) {
	var wire pickContentsWire
	switch {
	case c.SpreadGroup != nil:
		wire.SpreadGroup = &spreadGroupPickWire{
			Selections: c.SpreadGroup.Selections,
			Wagers:     c.SpreadGroup.Wagers,
		}
	case c.UserInput != nil:
		wire.UserInput = &userInputPickWire{
			Answer: c.UserInput.Answer,
			Wager:  c.UserInput.Wager,
		}
	default:
		return nil, fmt.Errorf("pick contents are required")
	}
	return sonic.Marshal(wire)
}

func (c *Contents) UnmarshalJSON(data []byte) error {
	var wire pickContentsWire
	if err := sonic.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode pick contents: %w", err)
	}

	switch {
	case wire.SpreadGroup != nil && wire.UserInput != nil:
		return fmt.Errorf("pick contents must have exactly one variant")
	case wire.SpreadGroup != nil:
		for i, side := range wire.SpreadGroup.Selections {
			if _, err := event.ParseSide(string(side)); err != nil {
				return fmt.Errorf("selection %d: %w", i, err)
			}
		}
		*c = Contents{SpreadGroup: &SpreadGroupPick{
			Selections: wire.SpreadGroup.Selections,
			Wagers:     wire.SpreadGroup.Wagers,
		}}
		return nil
	case wire.UserInput != nil:
		*c = Contents{UserInput: &UserInputPick{
			Answer: wire.UserInput.Answer,
			Wager:  wire.UserInput.Wager,
		}}
		return nil
	default:
		return fmt.Errorf("pick contents are required")
	}
}

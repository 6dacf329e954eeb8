package memory

import (
	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/domain/pick"
)

func cloneEvent(ev event.Event) event.Event {
	copied := ev
	copied.Contents = cloneEventContents(ev.Contents)
	return copied
}

func cloneEventContents(c event.Contents) event.Contents {
	switch {
	case c.SpreadGroup != nil:
		spreads := make([]event.Spread, len(c.SpreadGroup.Spreads))
		copy(spreads, c.SpreadGroup.Spreads)
		for i, s := range spreads {
			if s.Answer != nil {
				answer := *s.Answer
				spreads[i].Answer = &answer
			}
		}
		return event.Contents{SpreadGroup: &event.SpreadGroup{Spreads: spreads}}
	case c.UserInput != nil:
		ui := *c.UserInput
		if ui.AcceptableAnswers != nil {
			ui.AcceptableAnswers = append([]string{}, ui.AcceptableAnswers...)
		}
		return event.Contents{UserInput: &ui}
	default:
		return event.Contents{}
	}
}

func clonePick(p pick.Pick) pick.Pick {
	copied := p
	copied.Contents = clonePickContents(p.Contents)
	if p.Points != nil {
		points := *p.Points
		copied.Points = &points
	}
	return copied
}

func clonePickContents(c pick.Contents) pick.Contents {
	switch {
	case c.SpreadGroup != nil:
		return pick.Contents{SpreadGroup: &pick.SpreadGroupPick{
			Selections: append([]event.Side(nil), c.SpreadGroup.Selections...),
			Wagers:     append([]int(nil), c.SpreadGroup.Wagers...),
		}}
	case c.UserInput != nil:
		ui := *c.UserInput
		return pick.Contents{UserInput: &ui}
	default:
		return pick.Contents{}
	}
}

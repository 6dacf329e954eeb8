package event

import (
	"strings"
	"testing"

	"github.com/bytedance/sonic"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		raw  string
		want Line
		ok   bool
	}{
		{"-3", -6, true},
		{"+7", 14, true},
		{"-1.5", -3, true},
		{"0.5", 1, true},
		{"0", 0, true},
		{"-0.5", -1, true},
		{"7.0", 14, true},
		{"1.25", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, err := ParseLine(tc.raw)
		if tc.ok && err != nil {
			t.Fatalf("ParseLine(%q): unexpected error %v", tc.raw, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseLine(%q): expected error", tc.raw)
			}
			continue
		}
		if got != tc.want {
			t.Fatalf("ParseLine(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestLineJSONRoundTrip(t *testing.T) {
	for _, raw := range []string{`-3`, `-1.5`, `"7"`, `"0.5"`} {
		var l Line
		if err := sonic.Unmarshal([]byte(raw), &l); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		out, err := sonic.Marshal(l)
		if err != nil {
			t.Fatalf("marshal %s: %v", raw, err)
		}
		want := strings.Trim(raw, `"`)
		if string(out) != want {
			t.Fatalf("round trip %s: got %s, want %s", raw, out, want)
		}
	}
}

func TestSpreadGroupContentsRoundTrip(t *testing.T) {
	answer := OutcomePush
	original := Contents{SpreadGroup: &SpreadGroup{Spreads: []Spread{
		{HomeID: "team-a", AwayID: "team-b", HomeLine: -6, Notes: "rivalry game"},
		{HomeID: "team-c", AwayID: "team-d", HomeLine: 14},
		{HomeID: "team-e", AwayID: "team-f", HomeLine: -3, Answer: &answer},
	}}}

	data, err := sonic.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"spread_group":[`) {
		t.Fatalf("unexpected wire shape: %s", data)
	}
	if strings.Contains(string(data), `"user_input"`) {
		t.Fatalf("spread group payload leaked user_input: %s", data)
	}

	var decoded Contents
	if err := sonic.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Kind() != KindSpreadGroup {
		t.Fatalf("decoded kind = %s", decoded.Kind())
	}
	spreads := decoded.SpreadGroup.Spreads
	if len(spreads) != 3 {
		t.Fatalf("decoded %d spreads, want 3", len(spreads))
	}
	if spreads[0].HomeLine != -6 || spreads[0].Notes != "rivalry game" {
		t.Fatalf("spread 0 mismatch: %+v", spreads[0])
	}
	if spreads[1].Answer != nil {
		t.Fatalf("ungraded spread decoded with answer %v", *spreads[1].Answer)
	}
	if spreads[2].Answer == nil || *spreads[2].Answer != OutcomePush {
		t.Fatalf("graded spread lost its answer: %+v", spreads[2])
	}
}

func TestUserInputContentsRoundTrip(t *testing.T) {
	t.Run("ungraded omits acceptable answers", func(t *testing.T) {
		original := Contents{UserInput: &UserInput{Title: "Super Bowl MVP", Points: 4}}
		data, err := sonic.Marshal(original)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(data), "acceptable_answers") {
			t.Fatalf("ungraded payload carries answers: %s", data)
		}

		var decoded Contents
		if err := sonic.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if decoded.UserInput.Graded() {
			t.Fatal("decoded ungraded question reports graded")
		}
	})

	t.Run("graded empty set survives", func(t *testing.T) {
		original := Contents{UserInput: &UserInput{Title: "First turnover", Points: 2, AcceptableAnswers: []string{}}}
		data, err := sonic.Marshal(original)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(data), `"acceptable_answers":[]`) {
			t.Fatalf("graded empty set dropped from payload: %s", data)
		}

		var decoded Contents
		if err := sonic.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !decoded.UserInput.Graded() {
			t.Fatal("graded question decoded as ungraded")
		}
		if len(decoded.UserInput.AcceptableAnswers) != 0 {
			t.Fatalf("unexpected answers: %v", decoded.UserInput.AcceptableAnswers)
		}
	})
}

func TestContentsValidate(t *testing.T) {
	cases := []struct {
		name     string
		contents Contents
		ok       bool
	}{
		{"empty", Contents{}, false},
		{"both variants", Contents{SpreadGroup: &SpreadGroup{}, UserInput: &UserInput{}}, false},
		{"empty group", Contents{SpreadGroup: &SpreadGroup{}}, false},
		{"same teams", Contents{SpreadGroup: &SpreadGroup{Spreads: []Spread{{HomeID: "x", AwayID: "x", HomeLine: 2}}}}, false},
		{"valid group", Contents{SpreadGroup: &SpreadGroup{Spreads: []Spread{{HomeID: "x", AwayID: "y", HomeLine: 2}}}}, true},
		{"zero points", Contents{UserInput: &UserInput{Title: "q", Points: 0}}, false},
		{"blank title", Contents{UserInput: &UserInput{Title: "  ", Points: 1}}, false},
		{"valid question", Contents{UserInput: &UserInput{Title: "q", Points: 1}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.contents.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

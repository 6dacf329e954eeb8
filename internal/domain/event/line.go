package event

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Line is a point spread stored in half points, so every representable value
// has 0.5 granularity exactly. -3 is stored as -6, -1.5 as -3.
type Line int

var ErrBadLine = errors.New("bad spread line")

// ParseLine accepts "-3", "+7", "-1.5", "0.5" and rejects anything finer than
// half a point.
func ParseLine(raw string) (Line, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadLine)
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole := s
	half := false
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole = s[:i]
		switch s[i+1:] {
		case "5":
			half = true
		case "0", "00", "":
		default:
			return 0, fmt.Errorf("%w: %q is not on a half-point boundary", ErrBadLine, raw)
		}
	}
	if whole == "" {
		whole = "0"
	}

	n, err := strconv.Atoi(whole)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadLine, raw)
	}

	v := n * 2
	if half {
		v++
	}
	if neg {
		v = -v
	}

	return Line(v), nil
}

// String renders the line as a signed decimal, e.g. "-3", "+7", "-1.5".
func (l Line) String() string {
	v := int(l)
	sign := "+"
	if v < 0 {
		sign = "-"
		v = -v
	}
	if v%2 == 0 {
		return sign + strconv.Itoa(v/2)
	}
	return sign + strconv.Itoa(v/2) + ".5"
}

// MarshalJSON emits a bare JSON number ("-3" or "-1.5"), never a string.
func (l Line) MarshalJSON() ([]byte, error) {
	v := int(l)
	neg := v < 0
	if neg {
		v = -v
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.Itoa(v / 2))
	if v%2 != 0 {
		b.WriteString(".5")
	}
	return []byte(b.String()), nil
}

// UnmarshalJSON accepts a JSON number or a decimal string.
func (l *Line) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseLine(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

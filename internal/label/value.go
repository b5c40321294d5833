package label

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a single labeler judgment for one category of one study.
type Value int8

const (
	Missing Value = iota
	ExplicitNegative
	Uncertain
	Positive
)

func (v Value) String() string {
	switch v {
	case Positive:
		return "positive"
	case ExplicitNegative:
		return "negative"
	case Uncertain:
		return "uncertain"
	default:
		return "missing"
	}
}

// Code returns the numeric code labelers use for v. ok is false for Missing.
func (v Value) Code() (code int, ok bool) {
	switch v {
	case Positive:
		return 1, true
	case ExplicitNegative:
		return 0, true
	case Uncertain:
		return -1, true
	default:
		return 0, false
	}
}

func (v Value) Mentioned() bool {
	return v != Missing
}

// FromCode maps a numeric labeler code to a Value.
func FromCode(code int) (Value, error) {
	switch code {
	case 1:
		return Positive, nil
	case 0:
		return ExplicitNegative, nil
	case -1:
		return Uncertain, nil
	default:
		return Missing, fmt.Errorf("unknown label code %d", code)
	}
}

// ParseValue parses a CSV cell. Empty cells and NaN markers are Missing.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "null", "none":
		return Missing, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing, fmt.Errorf("invalid label value %q", s)
	}
	if f != float64(int(f)) {
		return Missing, fmt.Errorf("invalid label value %q", s)
	}
	v, err := FromCode(int(f))
	if err != nil {
		return Missing, fmt.Errorf("invalid label value %q: %w", s, err)
	}
	return v, nil
}

// Package scheme turns ternary label matrices into binary matrices under one
// of four clinical interpretations.
package scheme

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/labeleval/internal/label"
)

type Scheme int

const (
	Mention Scheme = iota
	Presence
	Absence
	Uncertain
)

// All lists the schemes in evaluation order.
var All = []Scheme{Mention, Presence, Absence, Uncertain}

// Weighted lists the schemes that contribute to the composite score.
var Weighted = []Scheme{Presence, Absence, Uncertain}

func (s Scheme) String() string {
	switch s {
	case Mention:
		return "mention"
	case Presence:
		return "presence"
	case Absence:
		return "absence"
	case Uncertain:
		return "uncertain"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

func (s Scheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Scheme) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func Parse(name string) (Scheme, error) {
	for _, s := range All {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unrecognized scheme %q", name)
}

// Bit is one binary cell. Unresolved marks a pair that carries no judgment;
// Encode never produces it.
type Bit int8

const (
	Unresolved Bit = -1
	Zero       Bit = 0
	One        Bit = 1
)

// Apply maps a single label value to a bit under s.
func (s Scheme) Apply(v label.Value) Bit {
	var positive bool
	switch s {
	case Mention:
		positive = v.Mentioned()
	case Presence:
		positive = v == label.Positive
	case Absence:
		positive = v == label.ExplicitNegative
	case Uncertain:
		positive = v == label.Uncertain
	}
	if positive {
		return One
	}
	return Zero
}

// positiveValue is the label value that Lift uses for a set bit.
func (s Scheme) positiveValue() label.Value {
	switch s {
	case Absence:
		return label.ExplicitNegative
	case Uncertain:
		return label.Uncertain
	default:
		return label.Positive
	}
}

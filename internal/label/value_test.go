package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"1", Positive},
		{"1.0", Positive},
		{"0", ExplicitNegative},
		{"0.0", ExplicitNegative},
		{"-1", Uncertain},
		{"-1.0", Uncertain},
		{"", Missing},
		{"  ", Missing},
		{"nan", Missing},
		{"NaN", Missing},
		{"NULL", Missing},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseValue_Invalid(t *testing.T) {
	for _, in := range []string{"2", "yes", "0.5", "-2"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseValue(in)
			assert.Error(t, err)
		})
	}
}

func TestValue_Code(t *testing.T) {
	code, ok := Positive.Code()
	assert.True(t, ok)
	assert.Equal(t, 1, code)

	code, ok = Uncertain.Code()
	assert.True(t, ok)
	assert.Equal(t, -1, code)

	_, ok = Missing.Code()
	assert.False(t, ok)
	assert.False(t, Missing.Mentioned())
	assert.True(t, ExplicitNegative.Mentioned())
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, LungOpacity, Canonical(AirspaceOpacity))
	assert.Equal(t, Edema, Canonical(Edema))
	assert.True(t, IsCategory(AirspaceOpacity))
	assert.False(t, IsCategory("Report Impression"))
	assert.Len(t, Categories, 14)
}

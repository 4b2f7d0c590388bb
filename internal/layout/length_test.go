package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
	}{
		{"", Length{}},
		{"50%", Length{Percent: 50, Set: true}},
		{"120px", Length{Pixels: 120, Set: true}},
		{"-8", Length{Pixels: -8, Set: true}},
		{"5.5rem", Length{Pixels: 88, Set: true}},
		{"calc(50% + 120px)", Length{Percent: 50, Pixels: 120, Set: true}},
		{"calc(50% - 120px)", Length{Percent: 50, Pixels: -120, Set: true}},
		{"calc(10% + 5px - 25%)", Length{Percent: -15, Pixels: 5, Set: true}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLengthErrors(t *testing.T) {
	for _, in := range []string{"abc", "calc(50% * 2)", "calc(50% +)", "12em"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseLength(in)
			assert.ErrorIs(t, err, ErrInvalidLength)
		})
	}
}

func TestLengthStringRoundTrip(t *testing.T) {
	for _, in := range []string{"50%", "120px", "calc(50% + 120px)", "calc(50% - 120px)"} {
		l := MustParseLength(in)
		assert.Equal(t, in, l.String())
	}
	assert.Equal(t, "", Length{}.String())
}

func TestLengthResolve(t *testing.T) {
	assert.Equal(t, 760.0, MustParseLength("calc(50% + 120px)").Resolve(1280))
	assert.Equal(t, 216.0, Percent(30).Resolve(720))
	assert.Equal(t, 12.0, Pixels(12).Resolve(9999))
}

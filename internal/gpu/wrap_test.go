package gpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapCoord(t *testing.T) {
	assert.Equal(t, 0.25, WrapCoord(-0.75))
	assert.Equal(t, 0.5, WrapCoord(2.5))
	assert.Equal(t, 0.0, WrapCoord(1))
}

func TestWrapSpans(t *testing.T) {
	for _, tc := range []struct {
		name     string
		from, to float64
		exp      []Span
	}{
		{name: "inside", from: 0.25, to: 0.75, exp: []Span{{0.25, 0.75}}},
		{name: "negative start", from: -0.25, to: 0.5, exp: []Span{{0.75, 1}, {0, 0.5}}},
		{name: "shifted by a period", from: 1.25, to: 1.5, exp: []Span{{0.25, 0.5}}},
		{name: "one full period", from: -0.5, to: 0.5, exp: []Span{{0.5, 1}, {0, 0.5}}},
		{name: "aligned period", from: 0, to: 1, exp: []Span{{0, 1}}},
		{name: "two periods", from: -0.5, to: 1.5, exp: []Span{{0.5, 1}, {0, 1}, {0, 0.5}}},
		{name: "empty", from: 0.5, to: 0.5, exp: nil},
		{name: "inverted", from: 0.75, to: 0.5, exp: nil},
		{name: "nan", from: math.NaN(), to: 0.5, exp: nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			spans := WrapSpans(tc.from, tc.to)
			assert.Equal(t, tc.exp, spans)

			if tc.exp != nil {
				var total float64
				for _, s := range spans {
					total += s.Len()
				}
				assert.InDelta(t, tc.to-tc.from, total, 1e-12)
			}
		})
	}
}

func TestWrapSpansBounded(t *testing.T) {
	spans := WrapSpans(-1000, 0.5)
	assert.LessOrEqual(t, len(spans), maxWrapPeriods+1)
	assert.Equal(t, Span{0, 0.5}, spans[len(spans)-1])
}

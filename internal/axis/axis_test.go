package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderNoSpan(t *testing.T) {
	fx := Build(100e6, 0)
	assert.Equal(t, "-5", fx.Render(-5))
	assert.Equal(t, "+0", fx.Render(0))
	assert.Equal(t, "+3", fx.Render(3))
}

func TestRenderRelative(t *testing.T) {
	fx := Build(0, 1e6)
	assert.Equal(t, "0", fx.Render(0))
	assert.Equal(t, "+100k", fx.Render(1))
	assert.Equal(t, "-500k", fx.Render(-5))
}

func TestRenderAbsoluteCenter(t *testing.T) {
	fx := Build(100e6, 2e6)
	assert.Equal(t, "100 MHz", fx.Render(0))
	assert.Equal(t, "+600k", fx.Render(3))
	assert.Equal(t, "-400k", fx.Render(-2))
}

func TestRenderFractionalDivisions(t *testing.T) {
	fx := Build(0, 125e3)
	assert.Equal(t, "+12.5k", fx.Render(1))
	assert.Equal(t, "-62.5k", fx.Render(-5))
}

func TestSignificantDecimals(t *testing.T) {
	for _, tc := range []struct {
		v   float64
		exp int
	}{
		{125, 0},
		{12.5, 1},
		{1.25, 2},
		{999, 0},
		{0, 0},
	} {
		assert.Equal(t, tc.exp, significantDecimals(tc.v), "%v", tc.v)
	}
}

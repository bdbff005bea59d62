package glbackend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irfansharif/fosphor/internal/gpu"
)

func TestAnchor(t *testing.T) {
	for _, tc := range []struct {
		p    float64
		a    gpu.Align
		n    int
		want float64
	}{
		{10, gpu.AlignStart, 8, 10},
		{10.4, gpu.AlignStart, 8, 10},
		{10, gpu.AlignCenter, 8, 6},
		{10, gpu.AlignCenter, 7, 7},
		{10, gpu.AlignEnd, 8, 2},
		{9.6, gpu.AlignEnd, 3, 7},
	} {
		assert.Equal(t, tc.want, anchor(tc.p, tc.a, tc.n), "%+v", tc)
	}
}

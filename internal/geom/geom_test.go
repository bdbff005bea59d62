package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAffineStackOrder(t *testing.T) {
	// Equivalent to glTranslatef(10, 20); glScalef(2, 3): points are scaled
	// first, then translated.
	xf := Identity().Translate(10, 20).Scale(2, 3)
	p := xf.MulPoint(MakePoint(1, 1))
	assert.Equal(t, MakePoint(12, 23), p)
}

func TestAffineMul(t *testing.T) {
	a := Translation(1, 2)
	b := Scaling(4, 5)
	assert.Equal(t, MakePoint(5, 7), a.Mul(b).MulPoint(MakePoint(1, 1)))
	assert.Equal(t, MakePoint(8, 15), b.Mul(a).MulPoint(MakePoint(1, 1)))
}

func TestMatrix4ColumnMajor(t *testing.T) {
	m := MakeAffine(1, 2, 3, 4, 5, 6).Matrix4()
	// x' = 1*x + 2*y + 3, y' = 4*x + 5*y + 6
	assert.Equal(t, float32(1), m[0])
	assert.Equal(t, float32(4), m[1])
	assert.Equal(t, float32(2), m[4])
	assert.Equal(t, float32(5), m[5])
	assert.Equal(t, float32(3), m[12])
	assert.Equal(t, float32(6), m[13])
}

func TestOrtho(t *testing.T) {
	xf := Ortho(200, 100)
	assert.Equal(t, MakePoint(-1, -1), xf.MulPoint(MakePoint(0, 0)))
	assert.Equal(t, MakePoint(1, 1), xf.MulPoint(MakePoint(200, 100)))
	assert.Equal(t, Identity(), Ortho(0, 100))
}

func TestBox(t *testing.T) {
	b := MakeSpan(10, 30, 5, 25)
	assert.Equal(t, MakeBox(10, 5, 20, 20), b)
	assert.Equal(t, 30.0, b.X1())
	assert.Equal(t, 25.0, b.Y1())
	assert.False(t, b.Empty())
	assert.True(t, MakeSpan(10, 10, 0, 5).Empty())
	assert.Equal(t, [4]Point{{10, 5}, {30, 5}, {30, 25}, {10, 25}}, b.Corners())
}

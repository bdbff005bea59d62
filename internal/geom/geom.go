// Package geom provides 2D geometric primitives and affine transformations:
// - Points and axis-aligned boxes in screen space
// - 2D affine transformations (translation, scaling)
// - Transform composition in the same order as a fixed-function matrix stack
package geom

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Box represents an axis-aligned rectangle anchored at its lower-left
// corner.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeBox(x, y, w, h float64) Box             { return Box{X: x, Y: y, W: w, H: h} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

// MakeSpan builds the box covering [x0,x1] × [y0,y1].
func MakeSpan(x0, x1, y0, y1 float64) Box { return Box{X: x0, Y: y0, W: x1 - x0, H: y1 - y0} }

func (b Box) X1() float64 { return b.X + b.W }
func (b Box) Y1() float64 { return b.Y + b.H }

// Empty reports whether the box has no area.
func (b Box) Empty() bool { return b.W <= 0 || b.H <= 0 }

// Corners returns the corners counter-clockwise from the lower-left one.
func (b Box) Corners() [4]Point {
	return [4]Point{
		{b.X, b.Y},
		{b.X1(), b.Y},
		{b.X1(), b.Y1()},
		{b.X, b.Y1()},
	}
}

// Identity returns the identity transform.
func Identity() Affine { return MakeAffine(1, 0, 0, 0, 1, 0) }

// Translation returns a pure translation by (tx, ty).
func Translation(tx, ty float64) Affine { return MakeAffine(1, 0, tx, 0, 1, ty) }

// Scaling returns a pure axis-aligned scale by (sx, sy).
func Scaling(sx, sy float64) Affine { return MakeAffine(sx, 0, 0, 0, sy, 0) }

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Translate post-multiplies a translation, the way glTranslate does: the
// translation applies to points before t.
func (t Affine) Translate(tx, ty float64) Affine { return t.Mul(Translation(tx, ty)) }

// Scale post-multiplies a scale, the way glScale does.
func (t Affine) Scale(sx, sy float64) Affine { return t.Mul(Scaling(sx, sy)) }

// Matrix4 converts the transform to a column-major 4x4 matrix suitable for
// glUniformMatrix4fv.
func (t Affine) Matrix4() [16]float32 {
	return [16]float32{
		float32(t.A), float32(t.D), 0, 0,
		float32(t.B), float32(t.E), 0, 0,
		0, 0, 1, 0,
		float32(t.C), float32(t.F), 0, 1,
	}
}

// Ortho returns the transform from pixel coordinates (origin bottom-left)
// to normalized device coordinates for a w×h viewport.
func Ortho(w, h float64) Affine {
	if w <= 0 || h <= 0 {
		return Identity()
	}
	return MakeAffine(
		2.0/w, 0, -1,
		0, 2.0/h, -1,
	)
}

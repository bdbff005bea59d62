package gpu

import "math"

// maxWrapPeriods bounds how many texture periods WrapSpans will unroll.
const maxWrapPeriods = 16

// Span is a texture-coordinate range [From, To] along one axis.
type Span struct {
	From, To float64
}

// Len returns the length of the span.
func (s Span) Len() float64 { return s.To - s.From }

// WrapCoord folds a texture coordinate into [0,1) the way repeat addressing
// does.
func WrapCoord(v float64) float64 {
	return v - math.Floor(v)
}

// WrapSpans splits [from, to] on a repeating axis into spans inside [0,1],
// in order, cutting at every integer boundary. It is used on devices without
// native wrap-around sampling; a range that does not cross a boundary comes
// back as a single span. Ranges longer than maxWrapPeriods keep only their
// last maxWrapPeriods periods.
func WrapSpans(from, to float64) []Span {
	if !(to > from) || math.IsInf(to, 0) || math.IsInf(from, 0) {
		return nil
	}
	from = math.Max(from, to-maxWrapPeriods)

	var spans []Span
	for k := math.Floor(from); k < to; k++ {
		a := math.Max(from, k) - k
		b := math.Min(to, k+1) - k
		if b > a {
			spans = append(spans, Span{From: a, To: b})
		}
	}
	return spans
}

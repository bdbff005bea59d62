package render

import (
	"github.com/dustin/go-humanize"
)

// Stats tracks rendering metrics.
type Stats struct {
	Frames            int64
	LastDrawTimeUs    float64 // time spent in the last Draw call, finish included
	DrawCallsPerFrame int
	ResidentBytes     int64 // device memory held by the shared objects
	Phase             Phase
}

// Stats returns the current statistics.
func (r *Renderer) Stats() Stats {
	if r == nil {
		return Stats{Phase: PhaseReleased}
	}
	s := r.stats
	s.ResidentBytes = r.objects.bytes()
	s.Phase = r.phase
	return s
}

// PrintStats writes the statistics to the debug log.
func (r *Renderer) PrintStats() {
	s := r.Stats()
	renderLogger.Printf("%s, %d frames, %d draw calls/frame, %.2fµs/draw, %s resident",
		s.Phase, s.Frames, s.DrawCallsPerFrame, s.LastDrawTimeUs, humanize.IBytes(uint64(s.ResidentBytes)))
}

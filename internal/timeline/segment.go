package timeline

import (
	"time"

	"seance/internal/synth"
)

// Segment is one unit of the narrative: fixed display duration, optional
// synthesized effects fired when it is revealed. The segment list is
// compiled-in, ordered, and immutable; ids are unique.
type Segment struct {
	ID       string
	Text     string
	Duration time.Duration
	Effects  []synth.EffectKind
}

// Total is the sum of all segment durations.
func Total(segments []Segment) time.Duration {
	var total time.Duration
	for _, s := range segments {
		total += s.Duration
	}
	return total
}

// Offsets returns each segment's cumulative start offset: offset[i] is the
// sum of durations of all segments before i.
func Offsets(segments []Segment) []time.Duration {
	offsets := make([]time.Duration, len(segments))
	var at time.Duration
	for i, s := range segments {
		offsets[i] = at
		at += s.Duration
	}
	return offsets
}

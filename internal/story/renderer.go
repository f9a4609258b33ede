package story

import (
	"time"

	"seance/internal/timeline"
)

// Status is the controller's externally visible state.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusFinished:
		return "finished"
	}
	return "idle"
}

// Renderer receives reveal and status events from the controller. The core
// never depends on how segments are displayed; it only pushes events.
// Visibility is monotonic while playing: a revealed segment stays revealed
// until the session leaves Playing.
type Renderer interface {
	StatusChanged(status Status)
	SegmentRevealed(seg timeline.Segment, active bool)
	ElapsedTick(elapsed time.Duration)
}

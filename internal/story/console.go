package story

import (
	"fmt"
	"io"
	"sync"
	"time"

	"seance/internal/timeline"
)

// ConsoleRenderer displays the experience in a terminal: segments print as
// they reveal, a status line tracks elapsed time.
type ConsoleRenderer struct {
	Out       io.Writer
	ShowTicks bool
	Total     time.Duration

	mu sync.Mutex
}

func (r *ConsoleRenderer) StatusChanged(status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.Out, "\n-- %s --\n", status)
}

func (r *ConsoleRenderer) SegmentRevealed(seg timeline.Segment, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.Out, "\n%s\n", seg.Text)
}

func (r *ConsoleRenderer) ElapsedTick(elapsed time.Duration) {
	if !r.ShowTicks {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.Out, "\r  [%s / %s]", elapsed.Round(time.Second), r.Total.Round(time.Second))
}

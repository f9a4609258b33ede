package story

import (
	"sync"
	"time"

	"seance/internal/audio"
	"seance/internal/synth"
	"seance/internal/timeline"
)

// Controller mediates start/stop requests, coordinating the audio session,
// the ambient bed and the timeline scheduler. Every path into Idle cancels
// the run, stops the bed and releases the session — no dangling timers, no
// live audio nodes.
type Controller struct {
	session  *audio.Session
	renderer Renderer
	segments []timeline.Segment
	tick     time.Duration
	bed      *synth.Bed

	mu       sync.Mutex
	status   Status
	gen      int // run generation; bumps on every transition
	run      *timeline.Run
	bus      *audio.Bus
	revealed []bool
}

func New(session *audio.Session, renderer Renderer, segments []timeline.Segment, tick time.Duration) *Controller {
	return &Controller{
		session:  session,
		renderer: renderer,
		segments: segments,
		tick:     tick,
		bed:      &synth.Bed{},
		revealed: make([]bool, len(segments)),
	}
}

// Start begins playback. A no-op while already Playing; from Finished it
// performs an implicit reset first. On backend failure the controller stays
// Idle and the error is surfaced to the caller.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.status == StatusPlaying {
		c.mu.Unlock()
		return nil
	}
	finished := c.status == StatusFinished
	c.mu.Unlock()
	if finished {
		// Replay performs the same full teardown as an explicit reset.
		c.Stop()
	}

	bus, err := c.session.Acquire()
	if err != nil {
		return err
	}
	if err := c.bed.Begin(bus); err != nil {
		c.session.Release()
		return err
	}

	c.mu.Lock()
	c.status = StatusPlaying
	c.gen++
	gen := c.gen
	c.bus = bus
	c.revealed = make([]bool, len(c.segments))
	c.mu.Unlock()
	c.renderer.StatusChanged(StatusPlaying)

	// Schedule fires segment 0's reveal synchronously, so the run must be
	// built outside the lock.
	run := timeline.Schedule(c.segments, c.tick, timeline.Callbacks{
		OnReveal:   func(i int, seg timeline.Segment) { c.handleReveal(gen, i, seg) },
		OnFinished: func() { c.handleFinished(gen) },
		OnTick:     func(elapsed time.Duration) { c.handleTick(gen, elapsed) },
	})

	c.mu.Lock()
	if c.gen != gen {
		// A stop raced the scheduling; the run was never current.
		c.mu.Unlock()
		run.CancelAll()
		return nil
	}
	c.run = run
	c.mu.Unlock()
	return nil
}

// Stop aborts a playing session or resets a finished one; a no-op when
// Idle. Either way the controller lands in Idle with the audio session
// fully released.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.status == StatusIdle {
		c.mu.Unlock()
		return
	}
	run := c.run
	c.resetLocked()
	c.mu.Unlock()

	if run != nil {
		run.CancelAll()
	}
	c.bed.Stop()
	c.session.Release()
	c.renderer.StatusChanged(StatusIdle)
}

// resetLocked clears run state and returns the controller to Idle. The
// caller tears down the run, bed and session outside the lock.
func (c *Controller) resetLocked() {
	c.status = StatusIdle
	c.gen++
	c.run = nil
	c.bus = nil
	c.revealed = make([]bool, len(c.segments))
}

func (c *Controller) handleReveal(gen, i int, seg timeline.Segment) {
	c.mu.Lock()
	if c.gen != gen || c.status != StatusPlaying {
		c.mu.Unlock()
		return
	}
	c.revealed[i] = true
	bus := c.bus
	c.mu.Unlock()

	c.renderer.SegmentRevealed(seg, true)
	for _, kind := range seg.Effects {
		synth.Trigger(kind, bus)
	}
}

func (c *Controller) handleFinished(gen int) {
	c.mu.Lock()
	if c.gen != gen || c.status != StatusPlaying {
		c.mu.Unlock()
		return
	}
	c.status = StatusFinished
	c.run = nil
	c.mu.Unlock()
	c.renderer.StatusChanged(StatusFinished)
}

func (c *Controller) handleTick(gen int, elapsed time.Duration) {
	c.mu.Lock()
	live := c.gen == gen && c.status == StatusPlaying
	c.mu.Unlock()
	if live {
		c.renderer.ElapsedTick(elapsed)
	}
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Elapsed is the current run's clamped elapsed time; zero outside Playing.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusPlaying || c.run == nil {
		return 0
	}
	return c.run.Elapsed()
}

// Total is the full timeline duration.
func (c *Controller) Total() time.Duration {
	return timeline.Total(c.segments)
}

// Visible returns the ids of currently revealed segments, in order.
func (c *Controller) Visible() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ids []string
	for i, on := range c.revealed {
		if on {
			ids = append(ids, c.segments[i].ID)
		}
	}
	return ids
}

// Pending reports the current run's pending deferred events.
func (c *Controller) Pending() int {
	c.mu.Lock()
	run := c.run
	c.mu.Unlock()
	if run == nil {
		return 0
	}
	return run.Pending()
}

// Segments exposes the compiled-in timeline.
func (c *Controller) Segments() []timeline.Segment { return c.segments }

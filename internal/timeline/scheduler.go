package timeline

import (
	"sync"
	"time"
)

// Callbacks connect a run to its consumer. OnReveal fires once per segment
// in order; OnFinished fires once, after the last segment has displayed for
// its full duration; OnTick reports clamped elapsed time on a fixed
// interval. All callbacks stop the moment CancelAll is called.
type Callbacks struct {
	OnReveal   func(index int, seg Segment)
	OnFinished func()
	OnTick     func(elapsed time.Duration)
}

// Run is one playback attempt: a start timestamp plus the set of still-
// pending deferred events. Pending events are cancelled together or fire
// together; there is no partial cancellation.
type Run struct {
	segments []Segment
	total    time.Duration
	start    time.Time

	mu        sync.Mutex
	cancelled bool
	pending   int
	timers    []*time.Timer
	tickStop  chan struct{}
	tickOnce  sync.Once
}

// Schedule starts a run over the segments. Segment 0 is revealed
// synchronously, before Schedule returns; every later segment gets a
// deferred reveal at its cumulative offset. The returned Run owns
// cancellation of everything still pending.
func Schedule(segments []Segment, tick time.Duration, cb Callbacks) *Run {
	r := &Run{
		segments: segments,
		total:    Total(segments),
		start:    time.Now(),
		tickStop: make(chan struct{}),
	}
	if len(segments) == 0 {
		r.deferEvent(0, func() {
			r.stopTicker()
			if cb.OnFinished != nil {
				cb.OnFinished()
			}
		})
		return r
	}

	// The first segment shows immediately, before any timer is armed;
	// deferring it even by a zero delay would flash an empty display.
	if cb.OnReveal != nil {
		cb.OnReveal(0, segments[0])
	}

	offsets := Offsets(segments)
	last := len(segments) - 1
	for i := 1; i < len(segments); i++ {
		r.deferEvent(offsets[i], func() {
			if cb.OnReveal != nil {
				cb.OnReveal(i, r.segments[i])
			}
			if i == last {
				r.scheduleFinished(r.segments[i].Duration, cb)
			}
		})
	}
	if last == 0 {
		r.scheduleFinished(segments[0].Duration, cb)
	}

	if tick > 0 && cb.OnTick != nil {
		go r.tickLoop(tick, cb.OnTick)
	}
	return r
}

func (r *Run) scheduleFinished(after time.Duration, cb Callbacks) {
	r.deferEventFromNow(after, func() {
		r.stopTicker()
		if cb.OnFinished != nil {
			cb.OnFinished()
		}
	})
}

// deferEvent schedules fn at an offset from the run's start.
func (r *Run) deferEvent(offset time.Duration, fn func()) {
	delay := offset - time.Since(r.start)
	if delay < 0 {
		delay = 0
	}
	r.deferEventFromNow(delay, fn)
}

func (r *Run) deferEventFromNow(delay time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelled {
		return
	}
	r.pending++
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		// A cancelled run invalidates every token, including one whose
		// timer already fired into this window.
		r.mu.Lock()
		if r.cancelled {
			r.mu.Unlock()
			return
		}
		r.pending--
		r.mu.Unlock()
		fn()
	})
	r.timers = append(r.timers, t)
}

func (r *Run) tickLoop(interval time.Duration, onTick func(time.Duration)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.tickStop:
			return
		case <-ticker.C:
			r.mu.Lock()
			cancelled := r.cancelled
			r.mu.Unlock()
			if cancelled {
				return
			}
			onTick(r.Elapsed())
		}
	}
}

func (r *Run) stopTicker() {
	r.tickOnce.Do(func() { close(r.tickStop) })
}

// CancelAll atomically invalidates every pending deferred event and stops
// the elapsed ticker. Events that already fired are unaffected. Safe to
// call from any state, repeatedly.
func (r *Run) CancelAll() {
	r.mu.Lock()
	if r.cancelled {
		r.mu.Unlock()
		return
	}
	r.cancelled = true
	r.pending = 0
	timers := r.timers
	r.timers = nil
	r.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
	r.stopTicker()
}

// Pending reports the number of deferred events not yet fired or cancelled.
func (r *Run) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Elapsed is wall time since the run started, clamped to the total duration.
func (r *Run) Elapsed() time.Duration {
	e := time.Since(r.start)
	if e > r.total {
		return r.total
	}
	return e
}

// Total is the run's full timeline duration.
func (r *Run) Total() time.Duration { return r.total }

package timeline

import (
	"sync"
	"testing"
	"time"

	"seance/internal/synth"
)

func testSegments() []Segment {
	return []Segment{
		{ID: "a", Duration: 75 * time.Millisecond, Effects: []synth.EffectKind{synth.Heartbeat}},
		{ID: "b", Duration: 70 * time.Millisecond},
		{ID: "c", Duration: 80 * time.Millisecond, Effects: []synth.EffectKind{synth.Gust}},
	}
}

func TestTotalAndOffsets(t *testing.T) {
	segs := testSegments()
	if got := Total(segs); got != 225*time.Millisecond {
		t.Errorf("Total = %v, want 225ms", got)
	}
	want := []time.Duration{0, 75 * time.Millisecond, 145 * time.Millisecond}
	for i, off := range Offsets(segs) {
		if off != want[i] {
			t.Errorf("offset[%d] = %v, want %v", i, off, want[i])
		}
	}
}

type recorder struct {
	mu       sync.Mutex
	reveals  []int
	times    []time.Duration
	finished chan struct{}
	start    time.Time
}

func newRecorder() *recorder {
	return &recorder{finished: make(chan struct{}), start: time.Now()}
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnReveal: func(i int, seg Segment) {
			r.mu.Lock()
			r.reveals = append(r.reveals, i)
			r.times = append(r.times, time.Since(r.start))
			r.mu.Unlock()
		},
		OnFinished: func() { close(r.finished) },
	}
}

func (r *recorder) revealed() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.reveals...)
}

func TestScheduleRevealsInOrder(t *testing.T) {
	rec := newRecorder()
	run := Schedule(testSegments(), 0, rec.callbacks())

	// Segment 0 reveals synchronously, before Schedule returns.
	if got := rec.revealed(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("reveals after Schedule = %v, want [0]", got)
	}

	select {
	case <-rec.finished:
	case <-time.After(2 * time.Second):
		t.Fatal("finished never fired")
	}

	got := rec.revealed()
	if len(got) != 3 {
		t.Fatalf("reveals = %v, want 3 entries", got)
	}
	for i, idx := range got {
		if idx != i {
			t.Errorf("reveal %d = segment %d, want %d", i, idx, i)
		}
	}
	// Offsets hold within scheduling tolerance.
	wantAt := []time.Duration{0, 75 * time.Millisecond, 145 * time.Millisecond}
	const tolerance = 40 * time.Millisecond
	rec.mu.Lock()
	times := append([]time.Duration(nil), rec.times...)
	rec.mu.Unlock()
	for i, at := range times {
		if at < wantAt[i] || at > wantAt[i]+tolerance {
			t.Errorf("segment %d revealed at %v, want %v (+%v)", i, at, wantAt[i], tolerance)
		}
	}
	if run.Pending() != 0 {
		t.Errorf("pending after finish = %d, want 0", run.Pending())
	}
	if run.Elapsed() != run.Total() {
		t.Errorf("elapsed after finish = %v, want clamped to %v", run.Elapsed(), run.Total())
	}
}

func TestFinishedFiresAtTotalDuration(t *testing.T) {
	rec := newRecorder()
	run := Schedule(testSegments(), 0, rec.callbacks())
	defer run.CancelAll()

	select {
	case <-rec.finished:
		elapsed := time.Since(rec.start)
		total := 225 * time.Millisecond
		if elapsed < total || elapsed > total+60*time.Millisecond {
			t.Errorf("finished at %v, want ~%v", elapsed, total)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("finished never fired")
	}
}

func TestCancelAllClearsPending(t *testing.T) {
	rec := newRecorder()
	run := Schedule(testSegments(), 0, rec.callbacks())
	if run.Pending() == 0 {
		t.Fatal("expected pending events after Schedule")
	}
	run.CancelAll()
	if got := run.Pending(); got != 0 {
		t.Errorf("pending after CancelAll = %d, want 0", got)
	}

	// Nothing fires after cancellation: the run would have finished well
	// within this window.
	select {
	case <-rec.finished:
		t.Fatal("finished fired after CancelAll")
	case <-time.After(300 * time.Millisecond):
	}
	if got := rec.revealed(); len(got) != 1 {
		t.Errorf("reveals after cancel = %v, want only the synchronous first", got)
	}
}

func TestCancelAllIsIdempotent(t *testing.T) {
	run := Schedule(testSegments(), 0, Callbacks{})
	run.CancelAll()
	run.CancelAll()
	if got := run.Pending(); got != 0 {
		t.Errorf("pending = %d, want 0", got)
	}
}

func TestCancelAllOnEmptyTimeline(t *testing.T) {
	run := Schedule(nil, 0, Callbacks{})
	run.CancelAll() // safe with nothing scheduled
	if got := run.Pending(); got != 0 {
		t.Errorf("pending = %d, want 0", got)
	}
}

func TestSingleSegmentFinishes(t *testing.T) {
	rec := newRecorder()
	run := Schedule([]Segment{{ID: "only", Duration: 50 * time.Millisecond}}, 0, rec.callbacks())
	defer run.CancelAll()
	select {
	case <-rec.finished:
	case <-time.After(time.Second):
		t.Fatal("single-segment timeline never finished")
	}
	if got := rec.revealed(); len(got) != 1 || got[0] != 0 {
		t.Errorf("reveals = %v, want [0]", got)
	}
}

func TestTickerReportsClampedElapsed(t *testing.T) {
	var mu sync.Mutex
	var ticks []time.Duration
	rec := newRecorder()
	cb := rec.callbacks()
	cb.OnTick = func(elapsed time.Duration) {
		mu.Lock()
		ticks = append(ticks, elapsed)
		mu.Unlock()
	}
	run := Schedule(testSegments(), 10*time.Millisecond, cb)
	defer run.CancelAll()

	<-rec.finished
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(ticks) == 0 {
		t.Fatal("no ticks reported")
	}
	for _, e := range ticks {
		if e > run.Total() {
			t.Errorf("tick %v exceeds total %v", e, run.Total())
		}
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] < ticks[i-1] {
			t.Errorf("ticks not monotonic: %v then %v", ticks[i-1], ticks[i])
		}
	}
}

func TestTickerStopsOnCancel(t *testing.T) {
	var mu sync.Mutex
	count := 0
	run := Schedule(testSegments(), 5*time.Millisecond, Callbacks{
		OnTick: func(time.Duration) {
			mu.Lock()
			count++
			mu.Unlock()
		},
	})
	time.Sleep(20 * time.Millisecond)
	run.CancelAll()
	time.Sleep(10 * time.Millisecond) // let any in-flight tick land
	mu.Lock()
	after := count
	mu.Unlock()
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count != after {
		t.Errorf("ticker kept ticking after CancelAll (%d -> %d)", after, count)
	}
}

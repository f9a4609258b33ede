package audio

import (
	"errors"
	"testing"
)

func TestSessionAcquireIdempotent(t *testing.T) {
	calls := 0
	var backend *StubBackend
	s := NewSession(func() (Backend, error) {
		calls++
		backend = NewStubBackend(DefaultRate)
		return backend, nil
	})

	bus1, err := s.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	bus2, err := s.Acquire()
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	if bus1 != bus2 {
		t.Error("repeated Acquire returned a different bus")
	}
	if calls != 1 {
		t.Errorf("backend built %d times, want 1", calls)
	}
}

func TestSessionAcquireResumesSuspended(t *testing.T) {
	var backend *StubBackend
	s := NewSession(func() (Backend, error) {
		backend = NewStubBackend(DefaultRate)
		return backend, nil
	})
	if _, err := s.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := s.Suspend(); err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	if !backend.Suspended() {
		t.Fatal("backend not suspended")
	}
	if _, err := s.Acquire(); err != nil {
		t.Fatalf("Acquire after suspend: %v", err)
	}
	if backend.Suspended() {
		t.Error("Acquire did not resume the suspended backend")
	}
}

func TestSessionAcquireFailure(t *testing.T) {
	s := NewSession(func() (Backend, error) {
		return nil, ErrUnsupportedBackend
	})
	if _, err := s.Acquire(); !errors.Is(err, ErrUnsupportedBackend) {
		t.Fatalf("Acquire error = %v, want ErrUnsupportedBackend", err)
	}
	if s.Active() {
		t.Error("session active after failed acquire")
	}
}

func TestSessionReleaseThenFreshAcquire(t *testing.T) {
	var backends []*StubBackend
	s := NewSession(func() (Backend, error) {
		b := NewStubBackend(DefaultRate)
		backends = append(backends, b)
		return b, nil
	})

	bus, err := s.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := bus.PlayLoop(NewGraph(DefaultRate).Stream(constNode(0)), 1.0); err != nil {
		t.Fatalf("PlayLoop: %v", err)
	}

	s.Release()
	if !backends[0].Closed() {
		t.Error("Release did not close the backend")
	}
	if backends[0].LiveLoops() != 0 {
		t.Errorf("live loops after release = %d, want 0", backends[0].LiveLoops())
	}
	if s.Active() {
		t.Error("session still active after release")
	}

	if _, err := s.Acquire(); err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if len(backends) != 2 {
		t.Fatalf("backend built %d times, want 2", len(backends))
	}
	if backends[1].LiveLoops() != 0 || backends[1].LiveVoices() != 0 {
		t.Error("fresh backend carries residual nodes")
	}
}

func TestSessionReleaseWithoutAcquire(t *testing.T) {
	s := NewSession(func() (Backend, error) {
		return NewStubBackend(DefaultRate), nil
	})
	s.Release() // must not panic
}

func TestBusAppliesMasterLevel(t *testing.T) {
	backend := NewStubBackend(DefaultRate)
	s := NewSession(func() (Backend, error) { return backend, nil })
	bus, err := s.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := bus.PlayVoice(make([]byte, 80), 1.0, nil); err != nil {
		t.Fatalf("PlayVoice: %v", err)
	}
	if got := backend.LastVolume(); got != MasterLevel {
		t.Errorf("voice volume = %v, want master level %v", got, MasterLevel)
	}
}

func TestStubVoiceSelfDisposes(t *testing.T) {
	backend := NewStubBackend(DefaultRate)
	fired := 0
	h, err := backend.StartVoice(make([]byte, 8*100), 0.5, func() { fired++ })
	if err != nil {
		t.Fatalf("StartVoice: %v", err)
	}
	if backend.LiveVoices() != 1 {
		t.Fatalf("live voices = %d, want 1", backend.LiveVoices())
	}
	backend.FinishVoices()
	if backend.LiveVoices() != 0 {
		t.Errorf("live voices after finish = %d, want 0", backend.LiveVoices())
	}
	if fired != 1 {
		t.Errorf("done fired %d times, want 1", fired)
	}
	// Stopping after completion stays a no-op.
	if err := h.Stop(); err != nil {
		t.Errorf("Stop after finish: %v", err)
	}
	if fired != 1 {
		t.Errorf("done fired %d times after redundant stop, want 1", fired)
	}
}

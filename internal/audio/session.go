package audio

import (
	"log"
	"sync"
)

// MasterLevel is the fixed gain of the master bus all sound passes through.
const MasterLevel = 0.6

// Session owns the backend's lifecycle. Acquire is idempotent; Release
// tears the backend down completely so the next Acquire starts fresh.
// Only the session controller calls Acquire/Release; everything else
// consumes the Bus.
type Session struct {
	newBackend func() (Backend, error)
	master     float64

	mu        sync.Mutex
	backend   Backend
	bus       *Bus
	suspended bool
}

func NewSession(newBackend func() (Backend, error)) *Session {
	return &Session{newBackend: newBackend, master: MasterLevel}
}

// Acquire returns the session's bus, creating the backend on first use and
// resuming it if suspended.
func (s *Session) Acquire() (*Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend != nil {
		if s.suspended {
			if err := s.backend.Resume(); err != nil {
				return nil, err
			}
			s.suspended = false
		}
		return s.bus, nil
	}

	backend, err := s.newBackend()
	if err != nil {
		return nil, err
	}
	s.backend = backend
	s.bus = &Bus{backend: backend, master: s.master}
	return s.bus, nil
}

// Suspend pauses the backend without releasing it.
func (s *Session) Suspend() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backend == nil || s.suspended {
		return nil
	}
	if err := s.backend.Suspend(); err != nil {
		return err
	}
	s.suspended = true
	return nil
}

// Release stops all playback and disposes the backend. Safe to call when
// nothing was acquired. Disposal errors never abort the teardown.
func (s *Session) Release() {
	s.mu.Lock()
	backend := s.backend
	s.backend = nil
	s.bus = nil
	s.suspended = false
	s.mu.Unlock()

	if backend == nil {
		return
	}
	if err := backend.Close(); err != nil {
		log.Printf("audio: backend close: %v", err)
	}
}

// Active reports whether a backend is currently held.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend != nil
}

// Bus is the master mixing point. Voice and loop gains are scaled by the
// fixed master level before they reach the backend.
type Bus struct {
	backend Backend
	master  float64
}

func (b *Bus) SampleRate() int { return b.backend.SampleRate() }

func (b *Bus) PlayVoice(pcm []byte, gain float64, done func()) (Handle, error) {
	return b.backend.StartVoice(pcm, gain*b.master, done)
}

func (b *Bus) PlayLoop(stream *Stream, gain float64) (Handle, error) {
	return b.backend.StartLoop(stream, gain*b.master)
}

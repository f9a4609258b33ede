package audio

import (
	"io"
	"sync"
	"time"
)

// StubBackend is a fully functional backend with no audio device. Voices
// complete on a wall-clock timer matching their buffer length; loops run
// until stopped. It backs silent mode and the package tests.
type StubBackend struct {
	rate int

	mu        sync.Mutex
	voices    map[*stubHandle]struct{}
	loops     map[*stubHandle]struct{}
	closed    bool
	suspended bool

	voicesStarted   int
	loopsStarted    int
	lastVolume      float64
	lastVoiceFrames int
}

func NewStubBackend(sampleRate int) *StubBackend {
	return &StubBackend{
		rate:   sampleRate,
		voices: make(map[*stubHandle]struct{}),
		loops:  make(map[*stubHandle]struct{}),
	}
}

func (b *StubBackend) SampleRate() int { return b.rate }

func (b *StubBackend) StartVoice(pcm []byte, volume float64, done func()) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBackendAcquire
	}
	h := &stubHandle{backend: b, done: done, loop: false}
	b.voices[h] = struct{}{}
	b.voicesStarted++
	b.lastVolume = volume
	b.lastVoiceFrames = len(pcm) / BytesPerFrame

	d := time.Duration(float64(len(pcm)/BytesPerFrame) / float64(b.rate) * float64(time.Second))
	h.timer = time.AfterFunc(d, func() { _ = h.Stop() })
	return h, nil
}

func (b *StubBackend) StartLoop(stream io.Reader, volume float64) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBackendAcquire
	}
	h := &stubHandle{backend: b, loop: true}
	b.loops[h] = struct{}{}
	b.loopsStarted++
	b.lastVolume = volume
	return h, nil
}

func (b *StubBackend) Suspend() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.suspended = true
	return nil
}

func (b *StubBackend) Resume() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.suspended = false
	return nil
}

func (b *StubBackend) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	handles := make([]*stubHandle, 0, len(b.voices)+len(b.loops))
	for h := range b.voices {
		handles = append(handles, h)
	}
	for h := range b.loops {
		handles = append(handles, h)
	}
	b.mu.Unlock()

	for _, h := range handles {
		_ = h.Stop()
	}
	return nil
}

// FinishVoices completes every live voice immediately, firing their done
// callbacks. Lets tests observe self-disposal without waiting out buffers.
func (b *StubBackend) FinishVoices() {
	b.mu.Lock()
	handles := make([]*stubHandle, 0, len(b.voices))
	for h := range b.voices {
		handles = append(handles, h)
	}
	b.mu.Unlock()
	for _, h := range handles {
		_ = h.Stop()
	}
}

func (b *StubBackend) LiveVoices() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.voices)
}

func (b *StubBackend) LiveLoops() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.loops)
}

func (b *StubBackend) VoicesStarted() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.voicesStarted
}

func (b *StubBackend) LoopsStarted() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loopsStarted
}

func (b *StubBackend) LastVolume() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastVolume
}

func (b *StubBackend) LastVoiceFrames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastVoiceFrames
}

func (b *StubBackend) Suspended() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.suspended
}

func (b *StubBackend) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

type stubHandle struct {
	backend *StubBackend
	done    func()
	loop    bool
	timer   *time.Timer

	once sync.Once
}

func (h *stubHandle) Stop() error {
	h.once.Do(func() {
		if h.timer != nil {
			h.timer.Stop()
		}
		h.backend.mu.Lock()
		if h.loop {
			delete(h.backend.loops, h)
		} else {
			delete(h.backend.voices, h)
		}
		h.backend.mu.Unlock()
		if h.done != nil {
			h.done()
		}
	})
	return nil
}

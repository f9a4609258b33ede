package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// oto permits exactly one context per process, so the context is a
// process-wide singleton. Closing the backend stops every player and
// suspends the context; the next NewOtoBackend resumes it. This keeps the
// "at most one live backend instance" invariant while releasing the output
// device between sessions.
var otoShared struct {
	mu    sync.Mutex
	ctx   *oto.Context
	ready chan struct{}
	rate  int
}

type otoBackend struct {
	ctx  *oto.Context
	rate int

	mu     sync.Mutex
	live   map[*otoHandle]struct{}
	closed bool
}

// NewOtoBackend opens (or resumes) the system audio output at the given
// sample rate, stereo float32. It waits for the device to become ready,
// bounded by a timeout.
func NewOtoBackend(sampleRate int) (Backend, error) {
	otoShared.mu.Lock()
	defer otoShared.mu.Unlock()

	if otoShared.ctx == nil {
		ctx, ready, err := oto.NewContext(sampleRate, ChannelCount, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedBackend, err)
		}
		otoShared.ctx = ctx
		otoShared.ready = ready
		otoShared.rate = sampleRate
	}
	select {
	case <-otoShared.ready:
	case <-time.After(acquireTimeout * time.Second):
		return nil, fmt.Errorf("%w: device not ready", ErrBackendAcquire)
	}
	if err := otoShared.ctx.Resume(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendAcquire, err)
	}
	return &otoBackend{
		ctx:  otoShared.ctx,
		rate: otoShared.rate,
		live: make(map[*otoHandle]struct{}),
	}, nil
}

func (b *otoBackend) SampleRate() int { return b.rate }

func (b *otoBackend) StartVoice(pcm []byte, volume float64, done func()) (Handle, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: backend closed", ErrBackendAcquire)
	}
	player := b.ctx.NewPlayer(&pcmReader{data: pcm})
	player.SetVolume(clampF(volume, 0, 1))
	h := &otoHandle{backend: b, player: player, done: done}
	b.live[h] = struct{}{}
	b.mu.Unlock()

	player.Play()
	go h.waitForEnd()
	return h, nil
}

func (b *otoBackend) StartLoop(stream io.Reader, volume float64) (Handle, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: backend closed", ErrBackendAcquire)
	}
	player := b.ctx.NewPlayer(stream)
	player.SetVolume(clampF(volume, 0, 1))
	h := &otoHandle{backend: b, player: player}
	b.live[h] = struct{}{}
	b.mu.Unlock()

	player.Play()
	return h, nil
}

func (b *otoBackend) Suspend() error { return b.ctx.Suspend() }
func (b *otoBackend) Resume() error  { return b.ctx.Resume() }

func (b *otoBackend) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	handles := make([]*otoHandle, 0, len(b.live))
	for h := range b.live {
		handles = append(handles, h)
	}
	b.live = map[*otoHandle]struct{}{}
	b.mu.Unlock()

	for _, h := range handles {
		_ = h.Stop()
	}
	return b.ctx.Suspend()
}

func (b *otoBackend) forget(h *otoHandle) {
	b.mu.Lock()
	delete(b.live, h)
	b.mu.Unlock()
}

// otoHandle wraps one oto player. Disposal runs exactly once, whether the
// buffer plays out or Stop is called first.
type otoHandle struct {
	backend *otoBackend
	player  oto.Player
	done    func()

	mu      sync.Mutex
	stopped bool
	once    sync.Once
}

// waitForEnd polls until the buffer has played out, then disposes the voice.
func (h *otoHandle) waitForEnd() {
	for {
		time.Sleep(10 * time.Millisecond)
		h.mu.Lock()
		if h.stopped {
			h.mu.Unlock()
			return
		}
		playing := h.player.IsPlaying()
		h.mu.Unlock()
		if !playing {
			_ = h.Stop()
			return
		}
	}
}

func (h *otoHandle) Stop() error {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return nil
	}
	h.stopped = true
	h.mu.Unlock()

	var err error
	h.once.Do(func() {
		err = h.player.Close()
		h.backend.forget(h)
		if h.done != nil {
			h.done()
		}
	})
	return err
}

type pcmReader struct {
	data []byte
	pos  int
}

func (r *pcmReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

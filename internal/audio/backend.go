package audio

import (
	"errors"
	"io"
)

// PCM format shared by every backend: stereo float32 LE, 8 bytes per frame.
const (
	ChannelCount   = 2
	BytesPerFrame  = 8
	DefaultRate    = 44100
	acquireTimeout = 3 // seconds to wait for the output device to become ready
)

var (
	// ErrUnsupportedBackend means the runtime has no audio output capability.
	ErrUnsupportedBackend = errors.New("audio: no output backend available")
	// ErrBackendAcquire means the backend exists but never became ready.
	ErrBackendAcquire = errors.New("audio: backend acquisition failed")
)

// Backend abstracts the audio output device. The voice synthesizer and the
// ambient bed never see one directly; they play through a Bus handed out by
// the Session.
type Backend interface {
	SampleRate() int

	// StartVoice begins playback of a finite PCM buffer. done, if non-nil,
	// is invoked exactly once: when the buffer has played out or the handle
	// is stopped early. The backend releases the voice's resources itself.
	StartVoice(pcm []byte, volume float64, done func()) (Handle, error)

	// StartLoop begins playback of an endless stream. The stream plays
	// until its handle is stopped.
	StartLoop(stream io.Reader, volume float64) (Handle, error)

	// Suspend pauses the output device without releasing it.
	Suspend() error
	// Resume restarts a suspended device.
	Resume() error

	// Close stops every live voice and loop and releases the device.
	Close() error
}

// Handle controls one playing voice or loop. Stop halts playback and frees
// the underlying player; stopping an already-stopped handle is a no-op.
type Handle interface {
	Stop() error
}

package synth

import (
	"math"
	"sync/atomic"
	"time"
)

var noiseCounter uint64

// NoiseBuffer returns n samples of white noise shaped by window, which maps
// normalized position [0,1] to an amplitude factor. Every call draws a fresh
// sequence; only the envelope shape is stable across runs.
func NoiseBuffer(n int, window func(p float64) float64) []float64 {
	seed := atomic.AddUint64(&noiseCounter, 1) ^ uint64(time.Now().UnixNano())
	buf := make([]float64, n)
	for i := range buf {
		p := float64(i) / float64(n)
		buf[i] = lcg(&seed) * window(p)
	}
	return buf
}

// TaperOut holds full amplitude then fades linearly over the last third.
func TaperOut(p float64) float64 {
	const fadeFrom = 2.0 / 3.0
	if p < fadeFrom {
		return 1
	}
	return (1 - p) / (1 - fadeFrom)
}

// HalfSine rises then falls across the buffer.
func HalfSine(p float64) float64 {
	return math.Sin(math.Pi * p)
}

// FadeLoop tapers both ends so the buffer loops without clicks.
func FadeLoop(p float64) float64 {
	const edge = 0.05
	if p < edge {
		return p / edge
	}
	if p > 1-edge {
		return (1 - p) / edge
	}
	return 1
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

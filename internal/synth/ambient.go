package synth

import (
	"log"
	"sync"

	"seance/internal/audio"
)

// Bed is the continuous layered drone running under a playing session:
// a low sawtooth with slow tremolo, a quiet high triangle, and a long
// low-passed noise loop. At most one set of layers is live at a time.
type Bed struct {
	mu      sync.Mutex
	handles []audio.Handle
}

// Begin starts the bed's layers on the bus. A no-op if already running.
func (b *Bed) Begin(bus *audio.Bus) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.handles) > 0 {
		return nil
	}

	g := audio.NewGraph(bus.SampleRate())

	lfo := g.Oscillator(audio.Sine, BedTremoloFreq)
	drone := g.Gain(g.Oscillator(audio.Sawtooth, BedDroneFreq), BedDroneGain).
		Modulate(lfo, BedTremoloDepth)

	high := g.Gain(g.Oscillator(audio.Triangle, BedHighFreq), BedHighGain)

	n := int(BedNoiseSeconds * float64(bus.SampleRate()))
	noise := g.Filter(g.NoiseSource(NoiseBuffer(n, FadeLoop), true), audio.LowPass, BedNoiseCutoff, 0.9)
	wash := g.Gain(noise, BedNoiseGain)

	for _, layer := range []*audio.Gain{drone, high, wash} {
		h, err := bus.PlayLoop(g.Stream(layer), 1.0)
		if err != nil {
			b.stopLocked()
			return err
		}
		b.handles = append(b.handles, h)
	}
	return nil
}

// Stop halts and releases every layer. Each layer's stop is isolated so one
// failure cannot leave siblings running. After Stop a fresh Begin is valid.
func (b *Bed) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

func (b *Bed) stopLocked() {
	failed := 0
	for _, h := range b.handles {
		if err := h.Stop(); err != nil {
			failed++
		}
	}
	if failed > 0 {
		log.Printf("synth: ambient bed teardown: %d layer(s) refused to stop", failed)
	}
	b.handles = nil
}

func (b *Bed) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handles) > 0
}

// Layers reports the number of live looping nodes.
func (b *Bed) Layers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handles)
}

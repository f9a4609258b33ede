package audio

import (
	"io"
	"math"
)

// The graph renders node trees offline into PCM. Envelope breakpoints are
// expressed in seconds from node start and resolved per sample, so audio
// timing is tied to the sample clock, not to event-loop scheduling.

type Waveform int

const (
	Sine Waveform = iota
	Sawtooth
	Triangle
)

type FilterKind int

const (
	LowPass FilterKind = iota
	HighPass
	BandPass
)

// Node produces one mono sample per frame. Frames advance monotonically;
// nodes may keep per-frame state (phase, filter memory).
type Node interface {
	Next(i int) float64
}

// Graph builds nodes bound to one sample rate.
type Graph struct {
	rate float64
}

func NewGraph(sampleRate int) *Graph {
	return &Graph{rate: float64(sampleRate)}
}

func (g *Graph) SampleRate() int { return int(g.rate) }

// ---- Oscillator -----------------------------------------------------------

type Oscillator struct {
	wave  Waveform
	rate  float64
	phase float64

	freq     float64
	rampTo   float64
	rampOver float64 // seconds; 0 means no glide
}

func (g *Graph) Oscillator(wave Waveform, freq float64) *Oscillator {
	return &Oscillator{wave: wave, rate: g.rate, freq: freq}
}

// RampFreq glides the frequency exponentially from its initial value to
// target over the given number of seconds, then holds.
func (o *Oscillator) RampFreq(target, over float64) *Oscillator {
	o.rampTo = target
	o.rampOver = over
	return o
}

func (o *Oscillator) Next(i int) float64 {
	f := o.freq
	if o.rampOver > 0 {
		p := float64(i) / o.rate / o.rampOver
		if p > 1 {
			p = 1
		}
		f = o.freq * math.Pow(o.rampTo/o.freq, p)
	}
	o.phase += 2 * math.Pi * f / o.rate
	switch o.wave {
	case Sawtooth:
		return sawWave(o.phase)
	case Triangle:
		return triWave(o.phase)
	default:
		return math.Sin(o.phase)
	}
}

func sawWave(phase float64) float64 {
	p := math.Mod(phase/(2*math.Pi), 1.0)
	return 2*p - 1
}

func triWave(phase float64) float64 {
	return (2.0 / math.Pi) * math.Asin(math.Sin(phase))
}

// ---- Noise source ---------------------------------------------------------

// NoiseSource plays back a precomputed sample buffer, optionally looping.
// A non-looping source goes silent past its end.
type NoiseSource struct {
	buf  []float64
	loop bool
}

func (g *Graph) NoiseSource(buf []float64, loop bool) *NoiseSource {
	return &NoiseSource{buf: buf, loop: loop}
}

func (n *NoiseSource) Next(i int) float64 {
	if len(n.buf) == 0 {
		return 0
	}
	if n.loop {
		return n.buf[i%len(n.buf)]
	}
	if i >= len(n.buf) {
		return 0
	}
	return n.buf[i]
}

// ---- Filter ----------------------------------------------------------------

// Filter is a 2-pole state-variable filter. damping is the inverse of
// resonance: lower values give a narrower band.
type Filter struct {
	in      Node
	kind    FilterKind
	f       float64
	damping float64
	lp, bp  float64
}

func (g *Graph) Filter(in Node, kind FilterKind, cutoff, damping float64) *Filter {
	f := 2 * math.Pi * cutoff / g.rate
	if f > 0.9 {
		f = 0.9
	}
	return &Filter{in: in, kind: kind, f: f, damping: damping}
}

func (fl *Filter) Next(i int) float64 {
	in := fl.in.Next(i)
	fl.lp += fl.f * fl.bp
	hp := in - fl.lp - fl.damping*fl.bp
	fl.bp += fl.f * hp
	fl.lp = clampF(fl.lp, -1.5, 1.5)
	fl.bp = clampF(fl.bp, -1.5, 1.5)
	switch fl.kind {
	case HighPass:
		return hp
	case BandPass:
		return fl.bp
	default:
		return fl.lp
	}
}

// ---- Gain ------------------------------------------------------------------

type breakpoint struct {
	at    float64 // seconds from node start
	level float64
}

// Gain scales its input by a static level, a breakpoint envelope, or both,
// with optional amplitude modulation from an LFO node.
type Gain struct {
	in     Node
	rate   float64
	level  float64
	points []breakpoint

	lfo      Node
	lfoDepth float64
}

func (g *Graph) Gain(in Node, level float64) *Gain {
	return &Gain{in: in, rate: g.rate, level: level}
}

// Ramp appends an envelope breakpoint. Levels between breakpoints are
// linearly interpolated; before the first and after the last they hold.
// Breakpoints must be appended in increasing time order.
func (gn *Gain) Ramp(at, level float64) *Gain {
	gn.points = append(gn.points, breakpoint{at: at, level: level})
	return gn
}

// Modulate applies tremolo: the LFO's [-1,1] output swings the gain between
// level*(1-depth) and level.
func (gn *Gain) Modulate(lfo Node, depth float64) *Gain {
	gn.lfo = lfo
	gn.lfoDepth = depth
	return gn
}

func (gn *Gain) Next(i int) float64 {
	g := gn.level * gn.envelopeAt(float64(i)/gn.rate)
	if gn.lfo != nil {
		m := 0.5 + 0.5*gn.lfo.Next(i)
		g *= 1 - gn.lfoDepth + gn.lfoDepth*m
	}
	return gn.in.Next(i) * g
}

func (gn *Gain) envelopeAt(t float64) float64 {
	if len(gn.points) == 0 {
		return 1
	}
	if t <= gn.points[0].at {
		return gn.points[0].level
	}
	for k := 1; k < len(gn.points); k++ {
		a, b := gn.points[k-1], gn.points[k]
		if t <= b.at {
			if b.at == a.at {
				return b.level
			}
			p := (t - a.at) / (b.at - a.at)
			return a.level + (b.level-a.level)*p
		}
	}
	return gn.points[len(gn.points)-1].level
}

// ---- Mixer -----------------------------------------------------------------

type Mixer struct {
	inputs []Node
}

func (g *Graph) Mix(inputs ...Node) *Mixer {
	return &Mixer{inputs: inputs}
}

func (m *Mixer) Next(i int) float64 {
	s := 0.0
	for _, in := range m.inputs {
		s += in.Next(i)
	}
	return s
}

// ---- Rendering -------------------------------------------------------------

// Voice is a finite node tree with a fixed duration; it renders to a PCM
// buffer whose end is the voice's self-termination point.
type Voice struct {
	root     Node
	rate     float64
	duration float64
}

func (g *Graph) Voice(root Node, duration float64) *Voice {
	return &Voice{root: root, rate: g.rate, duration: duration}
}

func (v *Voice) Duration() float64 { return v.duration }

// Render produces the voice's stereo float32 LE PCM.
func (v *Voice) Render() []byte {
	n := int(v.duration * v.rate)
	buf := make([]byte, n*BytesPerFrame)
	for i := 0; i < n; i++ {
		putStereoF32(buf, i, softSat(v.root.Next(i)))
	}
	return buf
}

// Stream renders a node tree on demand, endlessly. Used for looping layers.
type Stream struct {
	root Node
	i    int
}

func (g *Graph) Stream(root Node) *Stream {
	return &Stream{root: root}
}

func (s *Stream) Read(p []byte) (int, error) {
	frames := len(p) / BytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	for k := 0; k < frames; k++ {
		putStereoF32(p, k, softSat(s.root.Next(s.i)))
		s.i++
	}
	return frames * BytesPerFrame, nil
}

var _ io.Reader = (*Stream)(nil)

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation — no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

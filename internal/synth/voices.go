package synth

import (
	"seance/internal/audio"
)

// EffectKind identifies a one-shot synthesis recipe.
type EffectKind int

const (
	Heartbeat EffectKind = iota
	Creak
	Whisper
	Gust
	Chime
)

func (k EffectKind) String() string {
	switch k {
	case Heartbeat:
		return "heartbeat"
	case Creak:
		return "creak"
	case Whisper:
		return "whisper"
	case Gust:
		return "gust"
	case Chime:
		return "chime"
	}
	return "unknown"
}

// Trigger synthesizes and starts one independent voice on the bus. It never
// blocks on playback: the voice renders to a finite buffer whose envelope
// breakpoints sit on the sample clock, and the backend disposes it when the
// buffer plays out. Trigger is safe to call redundantly; a failed start
// (backend torn down mid-flight) is dropped silently.
func Trigger(kind EffectKind, bus *audio.Bus) {
	if bus == nil {
		return
	}
	g := audio.NewGraph(bus.SampleRate())
	var voice *audio.Voice
	var gain float64
	switch kind {
	case Heartbeat:
		voice, gain = heartbeatVoice(g), HeartbeatGain
	case Creak:
		voice, gain = creakVoice(g), CreakGain
	case Whisper:
		voice, gain = whisperVoice(g), WhisperGain
	case Gust:
		voice, gain = gustVoice(g), GustGain
	case Chime:
		voice, gain = chimeVoice(g), ChimeGain
	default:
		return
	}
	_, _ = bus.PlayVoice(voice.Render(), gain, nil)
}

// heartbeatVoice: two ramped pulses on a low sine — lub at 0, dub at 0.48s.
func heartbeatVoice(g *audio.Graph) *audio.Voice {
	osc := g.Oscillator(audio.Sine, HeartbeatFreq)
	env := g.Gain(osc, 1.0).
		Ramp(0.00, 0).
		Ramp(0.06, 1).
		Ramp(0.40, 0).
		Ramp(0.48, 0).
		Ramp(0.54, 0.85).
		Ramp(0.88, 0)
	return g.Voice(env, 1.4)
}

// creakVoice: sawtooth sliding down through a narrow band-pass, like wood
// under slow strain.
func creakVoice(g *audio.Graph) *audio.Voice {
	osc := g.Oscillator(audio.Sawtooth, CreakStartFreq).RampFreq(CreakEndFreq, 2.2)
	band := g.Filter(osc, audio.BandPass, CreakBandFreq, 0.25)
	env := g.Gain(band, 1.0).
		Ramp(0.0, 0).
		Ramp(0.4, 1).
		Ramp(2.2, 0)
	return g.Voice(env, 2.5)
}

// whisperVoice: tapered noise, high-passed into sibilance.
func whisperVoice(g *audio.Graph) *audio.Voice {
	n := int(2.2 * float64(g.SampleRate()))
	src := g.NoiseSource(NoiseBuffer(n, TaperOut), false)
	hp := g.Filter(src, audio.HighPass, WhisperHighPass, 0.8)
	env := g.Gain(hp, 1.0).
		Ramp(0.0, 0).
		Ramp(0.2, 0.8).
		Ramp(0.8, 0.8).
		Ramp(2.2, 0)
	return g.Voice(env, 2.2)
}

// gustVoice: half-sine shaped noise through a mid band-pass.
func gustVoice(g *audio.Graph) *audio.Voice {
	n := int(3.0 * float64(g.SampleRate()))
	src := g.NoiseSource(NoiseBuffer(n, HalfSine), false)
	band := g.Filter(src, audio.BandPass, GustBandFreq, 0.7)
	env := g.Gain(band, 1.0).
		Ramp(0.0, 0).
		Ramp(0.8, 1).
		Ramp(3.0, 0)
	return g.Voice(env, 3.0)
}

// chimeVoice: three harmonics at 1x/1.33x/2x, each arriving a beat later
// with a longer tail, so the tones bloom instead of striking at once.
func chimeVoice(g *audio.Graph) *audio.Voice {
	ratios := []float64{1.0, 4.0 / 3.0, 2.0}
	tones := make([]audio.Node, len(ratios))
	end := 0.0
	for i, r := range ratios {
		start := float64(i) * ChimeStagger
		attack := 0.02 + 0.01*float64(i)
		decay := 1.2 + 0.5*float64(i)
		osc := g.Oscillator(audio.Sine, ChimeBaseFreq*r)
		tones[i] = g.Gain(osc, 1.0/float64(len(ratios))).
			Ramp(start, 0).
			Ramp(start+attack, 1).
			Ramp(start+attack+decay, 0)
		if e := start + attack + decay; e > end {
			end = e
		}
	}
	return g.Voice(g.Mix(tones...), end)
}

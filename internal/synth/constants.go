package synth

// Voice levels, pre-master. Tuned so overlapping effects sit above the bed
// without saturating the bus.
const (
	HeartbeatGain = 0.55
	CreakGain     = 0.40
	WhisperGain   = 0.35
	GustGain      = 0.45
	ChimeGain     = 0.30
)

// Effect voice timbre.
const (
	HeartbeatFreq = 55.0 // low sine thump

	CreakStartFreq = 300.0
	CreakEndFreq   = 80.0
	CreakBandFreq  = 420.0

	WhisperHighPass = 1800.0
	GustBandFreq    = 500.0

	ChimeBaseFreq = 660.0 // harmonics at 660/880/1320
	ChimeStagger  = 0.035 // attack offset per harmonic index, seconds
)

// Ambient bed layers.
const (
	BedDroneFreq    = 55.0
	BedDroneGain    = 0.22
	BedTremoloFreq  = 0.13
	BedTremoloDepth = 0.5

	BedHighFreq = 330.0
	BedHighGain = 0.05

	BedNoiseSeconds = 6.0
	BedNoiseCutoff  = 320.0
	BedNoiseGain    = 0.12
)

package story

import (
	"time"

	"seance/internal/synth"
	"seance/internal/timeline"
)

// Script is the compiled-in narrative timeline: fixed order, fixed
// durations, effects bound to the segment that reveals them.
func Script() []timeline.Segment {
	return []timeline.Segment{
		{
			ID:       "threshold",
			Text:     "The house has been empty for forty years, but the door was never locked.",
			Duration: 7500 * time.Millisecond,
			Effects:  []synth.EffectKind{synth.Heartbeat},
		},
		{
			ID:       "hallway",
			Text:     "Dust hangs in the hallway light, undisturbed by your passing.",
			Duration: 7 * time.Second,
		},
		{
			ID:       "stairs",
			Text:     "The staircase remembers every footstep it has ever carried.",
			Duration: 8 * time.Second,
			Effects:  []synth.EffectKind{synth.Creak},
		},
		{
			ID:       "landing",
			Text:     "On the landing, the air grows colder by a single degree.",
			Duration: 6500 * time.Millisecond,
			Effects:  []synth.EffectKind{synth.Gust},
		},
		{
			ID:       "voices",
			Text:     "Somewhere behind the wallpaper, a conversation continues without you.",
			Duration: 8500 * time.Millisecond,
			Effects:  []synth.EffectKind{synth.Whisper},
		},
		{
			ID:       "door",
			Text:     "The nursery door stands ajar, exactly as wide as a child's hand.",
			Duration: 7 * time.Second,
			Effects:  []synth.EffectKind{synth.Creak, synth.Heartbeat},
		},
		{
			ID:       "window",
			Text:     "Through the window, the garden is overgrown with winters.",
			Duration: 7500 * time.Millisecond,
			Effects:  []synth.EffectKind{synth.Gust},
		},
		{
			ID:       "clock",
			Text:     "A clock with no hands still insists on keeping time.",
			Duration: 8 * time.Second,
			Effects:  []synth.EffectKind{synth.Chime},
		},
		{
			ID:       "name",
			Text:     "You realize the whispering has been saying your name all along.",
			Duration: 9 * time.Second,
			Effects:  []synth.EffectKind{synth.Whisper, synth.Heartbeat},
		},
		{
			ID:       "leaving",
			Text:     "When you leave, you are careful to lock the door behind you. It was never locked.",
			Duration: 10 * time.Second,
			Effects:  []synth.EffectKind{synth.Chime},
		},
	}
}

package pet

import (
	"time"
)

const (
	minNeed = 0.0
	maxNeed = 100.0

	needsInterval = 5000 * time.Millisecond

	hungerPerStep      = 1.0
	energyRestPerStep  = 5.0
	energyMovePerStep  = -2.0
	energyIdlePerStep  = -0.5
	hungryThreshold    = 80.0
	exhaustedThreshold = 20.0

	complaintDuration = 2000 * time.Millisecond
)

func (e *Engine) tickNeeds(dt time.Duration) {
	e.drift(dt, e.energyStep())
}

// Elapse moves hunger and energy on by d at the resting idle rate, without
// running the state machine or speech. It is for time spent away, such as
// between two CLI invocations.
func (e *Engine) Elapse(d time.Duration) {
	if d <= 0 {
		return
	}
	e.drift(d, energyIdlePerStep)
	e.applyNeedsOverride()
}

func (e *Engine) drift(dt time.Duration, energyPerStep float64) {
	e.hungerTimer += dt
	if steps := e.hungerTimer / needsInterval; steps > 0 {
		e.hungerTimer -= steps * needsInterval
		e.hunger = clamp(e.hunger+float64(steps)*hungerPerStep, minNeed, maxNeed)
	}

	e.energyTimer += dt
	if steps := e.energyTimer / needsInterval; steps > 0 {
		e.energyTimer -= steps * needsInterval
		e.energy = clamp(e.energy+float64(steps)*energyPerStep, minNeed, maxNeed)
	}
}

func (e *Engine) energyStep() float64 {
	switch e.state {
	case StateSleep:
		return energyRestPerStep
	case StateZoomies, StateChase, StateMoveLeft, StateMoveRight:
		return energyMovePerStep
	}
	return energyIdlePerStep
}

// applyNeedsOverride runs every tick. Hunger wins over tiredness, and
// neither forces a state change.
func (e *Engine) applyNeedsOverride() {
	switch {
	case e.hunger > hungryThreshold && e.mood != MoodGrumpy && e.mood != MoodSleepy:
		e.setMood(MoodGrumpy)
		e.say("Grrr...", complaintDuration)
	case e.energy < exhaustedThreshold && e.mood != MoodSleepy:
		e.setMood(MoodSleepy)
		e.say("Zzz...", complaintDuration)
	}
}

// Snapshot captures the state worth keeping across restarts.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Mood:    e.mood,
		Hunger:  e.hunger,
		Energy:  e.energy,
		Style:   e.style,
		SavedAt: time.Now(),
	}
}

// Restore applies a saved snapshot. Unknown moods fall back to happy and
// needs are clamped.
func (e *Engine) Restore(s Snapshot) {
	m, err := ParseMood(string(s.Mood))
	if err != nil {
		m = MoodHappy
	}
	e.startEpisode(m)
	e.hunger = clamp(s.Hunger, minNeed, maxNeed)
	e.energy = clamp(s.Energy, minNeed, maxNeed)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

package pet

import (
	"log/slog"
	"time"
)

const (
	minMoodDuration = 20 * time.Second
	maxMoodDuration = 60 * time.Second
)

// moodWeights is the draw used when a mood episode ends.
var moodWeights = []struct {
	mood   Mood
	weight float64
}{
	{MoodHappy, 0.4},
	{MoodSleepy, 0.2},
	{MoodHyper, 0.2},
	{MoodGrumpy, 0.2},
}

// moodStates are the states forced when an episode rolls into a mood.
// Happy forces nothing.
var moodStates = map[Mood]State{
	MoodSleepy: StateSleep,
	MoodHyper:  StateZoomies,
	MoodGrumpy: StateShake,
}

// band is one slice of the idle roll: r below upper picks one of states.
type band struct {
	upper  float64
	states []State
}

var (
	moveEither     = []State{StateMoveRight, StateMoveLeft}
	moonwalkEither = []State{StateMoonwalkRight, StateMoonwalkLeft}
)

// idleBands are cumulative upper bounds over a uniform draw in [0,1).
// Moods tilt the odds but every mood keeps some variety. Hyper has no sleep band.
var idleBands = map[Mood][]band{
	MoodHappy: {
		{0.40, moveEither},
		{0.50, []State{StateLookSequence}},
		{0.60, []State{StateSpeak}},
		{0.70, []State{StateInquisitive}},
		{0.75, []State{StateSleep}},
		{0.80, []State{StateSpin}},
		{0.85, []State{StateJump}},
		{0.92, []State{StateShake}},
		{0.94, moonwalkEither},
		{1.00, []State{StateZoomies}},
	},
	MoodSleepy: {
		{0.15, moveEither},
		{0.30, []State{StateLookSequence}},
		{0.35, []State{StateSpeak}},
		{0.40, []State{StateInquisitive}},
		{0.85, []State{StateSleep}},
		{0.87, []State{StateSpin}},
		{0.90, []State{StateJump}},
		{0.95, []State{StateShake}},
		{0.97, moonwalkEither},
		{1.00, []State{StateZoomies}},
	},
	MoodHyper: {
		{0.30, moveEither},
		{0.35, []State{StateLookSequence}},
		{0.45, []State{StateSpeak}},
		{0.50, []State{StateInquisitive}},
		{0.62, []State{StateSpin}},
		{0.74, []State{StateJump}},
		{0.80, []State{StateShake}},
		{0.88, moonwalkEither},
		{1.00, []State{StateZoomies}},
	},
	MoodGrumpy: {
		{0.30, moveEither},
		{0.40, []State{StateLookSequence}},
		{0.45, []State{StateSpeak}},
		{0.50, []State{StateInquisitive}},
		{0.65, []State{StateSleep}},
		{0.67, []State{StateSpin}},
		{0.70, []State{StateJump}},
		{0.92, []State{StateShake}},
		{0.94, moonwalkEither},
		{1.00, []State{StateZoomies}},
	},
}

// rollIdle picks what an idle pet does next. A close cursor gets a mood
// reaction first: grumpy pets flee, happy and hyper ones wind up to chase.
func (e *Engine) rollIdle(pos *Positions) {
	if pos != nil {
		dx, dist := pos.offset()
		if dist < pounceRadius {
			switch e.mood {
			case MoodGrumpy:
				if chance(e.rng, 0.7) {
					if dx > 0 {
						e.SetState(StateMoveLeft)
					} else {
						e.SetState(StateMoveRight)
					}
					return
				}
			case MoodHappy, MoodHyper:
				if chance(e.rng, 0.7) {
					e.SetState(StatePreChase)
					return
				}
			}
		}
	}

	bands, ok := idleBands[e.mood]
	if !ok {
		bands = idleBands[MoodHappy]
	}
	r := e.rng.Float64()
	for _, b := range bands {
		if r < b.upper {
			e.SetState(pick(e.rng, b.states))
			return
		}
	}
}

func (e *Engine) tickMood(dt time.Duration) {
	e.moodTimer += dt
	if e.moodTimer <= e.moodDuration {
		return
	}

	next := rollMood(e.rng)
	e.startEpisode(next)
	if s, ok := moodStates[next]; ok {
		e.SetState(s)
	}
}

// SetMood starts a fresh mood episode, e.g. from a menu command.
func (e *Engine) SetMood(m Mood) {
	e.startEpisode(m)
}

func (e *Engine) startEpisode(m Mood) {
	e.setMood(m)
	e.moodTimer = 0
	e.moodDuration = rollMoodDuration(e.rng)
}

func (e *Engine) setMood(m Mood) {
	if m == e.mood {
		return
	}
	slog.Debug("pet mood changed", "from", e.mood, "to", m, "hunger", e.hunger, "energy", e.energy)
	e.mood = m
}

func rollMood(r Random) Mood {
	x := r.Float64()
	acc := 0.0
	for _, w := range moodWeights {
		acc += w.weight
		if x < acc {
			return w.mood
		}
	}
	return moodWeights[len(moodWeights)-1].mood
}

func rollMoodDuration(r Random) time.Duration {
	return between(r, minMoodDuration, maxMoodDuration)
}

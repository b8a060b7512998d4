// Package pet implements the behaviour engine: a per-tick state machine that
// drives sprite playback, derives transient transforms, and runs the
// mood and needs simulation that biases its transitions.
package pet

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

const (
	spawnDuration = 1000 * time.Millisecond
	spinDuration  = 1000 * time.Millisecond
	jumpDuration  = 500 * time.Millisecond
	shakeDuration = 500 * time.Millisecond

	zoomiesDuration   = 3000 * time.Millisecond
	zoomiesFlipWindow = 500 * time.Millisecond
	sleepDuration     = 20000 * time.Millisecond
	chaseDuration     = 5000 * time.Millisecond

	jumpHeight  = 50.0
	shakeAmount = 5.0

	faceRadius    = 400.0
	startleRadius = 200.0
	pounceRadius  = 300.0
)

// Point is a screen position in pixels.
type Point struct {
	X, Y float64
}

// Positions carries the cursor and the pet window origin for one tick.
// Pass nil to Update while the pet is being dragged.
type Positions struct {
	Cursor Point
	Window Point
}

// offset returns the horizontal delta from the window to the cursor and the
// straight-line distance between them.
func (p *Positions) offset() (dx, dist float64) {
	dx = p.Cursor.X - p.Window.X
	dy := p.Cursor.Y - p.Window.Y
	return dx, math.Hypot(dx, dy)
}

type transform struct {
	offsetX, offsetY float64
	rotation         float64
	scaleX, scaleY   float64
}

var identity = transform{scaleX: 1, scaleY: 1}

// Engine owns the pet's behaviour. It is not safe for concurrent use; the
// driver serialises calls.
type Engine struct {
	name    string
	catalog Catalog
	rng     Random

	style string
	anims map[State]AnimationDef
	sheet Sheet

	state      State
	frame      int
	frameTimer time.Duration
	bobTimer   time.Duration
	stateTimer time.Duration
	direction  Direction
	xf         transform
	chirped    bool
	held       bool

	mood         Mood
	moodTimer    time.Duration
	moodDuration time.Duration

	hunger      float64
	energy      float64
	hungerTimer time.Duration
	energyTimer time.Duration

	speech      string
	speechTimer time.Duration
	nextSpeech  time.Duration
}

// NewEngine builds an engine in the spawn state using the animations of the
// given style. It has no sprite sheet until LoadStyle is called with one.
func NewEngine(name string, catalog Catalog, style string, rng Random) (*Engine, error) {
	anims, err := resolveStyle(catalog, style)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve style %q: %w", style, err)
	}

	e := &Engine{
		name:      name,
		catalog:   catalog,
		rng:       rng,
		style:     style,
		anims:     anims,
		state:     StateSpawn,
		direction: Right,
		xf:        identity,
		mood:      MoodHappy,
		hunger:    0,
		energy:    maxNeed,
	}
	e.moodDuration = rollMoodDuration(rng)
	e.nextSpeech = rollSpeechDelay(rng)
	return e, nil
}

// LoadStyle swaps the animation tables and sprite sheet. Mood, needs and
// position survive. A nil or empty sheet is not an error: the pet simply
// renders nothing until a usable sheet arrives.
func (e *Engine) LoadStyle(sheet Sheet, style string) error {
	anims, err := resolveStyle(e.catalog, style)
	if err != nil {
		return fmt.Errorf("failed to load style %q: %w", style, err)
	}
	e.anims = anims
	e.style = style

	if sheet == nil || sheet.Len() == 0 {
		slog.Warn("sprite sheet unavailable, pet hidden until a valid style is loaded", "style", style)
		e.sheet = nil
	} else {
		e.sheet = sheet
	}

	if n := len(e.sequence()); e.frame >= n {
		e.frame = n - 1
	}
	slog.Debug("style loaded", "style", style, "visible", e.sheet != nil)
	return nil
}

// Update advances the engine by one tick. pos may be nil.
func (e *Engine) Update(dt time.Duration, pos *Positions) {
	if dt < 0 {
		dt = 0
	}
	prevStateTimer := e.stateTimer
	e.frameTimer += dt
	e.bobTimer += dt
	e.stateTimer += dt
	e.xf = identity

	if e.tickState(prevStateTimer) {
		return
	}

	e.tickSpeech(dt)
	e.tickMood(dt)
	e.tickNeeds(dt)
	e.applyNeedsOverride()
	e.advanceFrame(pos)
}

// tickState applies per-state effects. It reports true when the rest of the
// tick must be skipped.
func (e *Engine) tickState(prevStateTimer time.Duration) bool {
	switch e.state {
	case StateSpawn:
		if e.bobTimer >= spawnDuration {
			e.SetState(StateIdle)
		}

	case StateSpin:
		p := progress(e.frameTimer, spinDuration)
		if p >= 1 {
			e.SetState(StateIdle)
			break
		}
		e.xf.rotation = p * 360
		return true

	case StateJump:
		p := progress(e.frameTimer, jumpDuration)
		if p >= 1 {
			e.SetState(StateIdle)
			break
		}
		e.xf.offsetY = -math.Sin(p*math.Pi) * jumpHeight
		return true

	case StateShake:
		p := progress(e.frameTimer, shakeDuration)
		if p >= 1 {
			e.SetState(StateIdle)
			break
		}
		e.xf.offsetX = math.Sin(p*10*math.Pi) * shakeAmount
		return true

	case StateZoomies:
		if prevStateTimer/zoomiesFlipWindow != e.stateTimer/zoomiesFlipWindow && chance(e.rng, 0.3) {
			e.direction = -e.direction
		}
		if e.stateTimer >= zoomiesDuration {
			e.SetState(StateIdle)
		}

	case StateSleep:
		if e.stateTimer >= sleepDuration {
			e.SetState(StateIdle)
		} else if e.frame >= 2 && !e.chirped {
			e.chirped = true
		}

	case StateChase:
		if e.stateTimer >= chaseDuration {
			e.SetState(StateIdle)
		}
	}
	return false
}

func (e *Engine) advanceFrame(pos *Positions) {
	def := e.anims[e.state]
	if e.frameTimer < def.Interval {
		return
	}
	e.frameTimer = 0
	e.frame++

	seq := def.Sequence(e.direction)
	if e.frame < len(seq) {
		return
	}

	switch def.Playback {
	case Loop:
		e.frame = 0
		e.onLoopWrap(pos)
	case OneShot:
		e.SetState(def.Next)
	default:
		e.frame = len(seq) - 1
	}
}

func (e *Engine) onLoopWrap(pos *Positions) {
	if e.state == StateIdle && pos != nil {
		dx, dist := pos.offset()
		if dist < faceRadius {
			e.face(dx)
			if dist < startleRadius && chance(e.rng, 0.5) {
				if chance(e.rng, 0.5) {
					e.SetState(StateJump)
				} else {
					e.SetState(StateShake)
				}
				return
			}
		}
	}

	switch e.state {
	case StateIdle:
		if chance(e.rng, 0.3) {
			e.rollIdle(pos)
		}
	case StateMoveRight, StateMoveLeft, StateMoonwalkRight, StateMoonwalkLeft:
		if chance(e.rng, 0.2) {
			e.SetState(StateIdle)
		}
	}
}

func (e *Engine) face(dx float64) {
	if dx > 0 {
		e.direction = Right
	} else {
		e.direction = Left
	}
}

// SetState switches to s. Calling it with the current state does nothing,
// and a held pet stays in DRAG until it is released.
func (e *Engine) SetState(s State) {
	if s == e.state || !s.Valid() || (e.held && s != StateDrag) {
		return
	}
	prev := e.state
	e.state = s
	e.frame = 0
	e.frameTimer = 0
	e.stateTimer = 0
	e.chirped = false
	e.xf = identity

	switch s {
	case StateMoveLeft:
		e.direction = Left
	case StateMoveRight:
		e.direction = Right
	}
	slog.Debug("pet state changed", "from", prev, "to", s, "mood", e.mood)
}

// SetDirection lets the driver turn the pet, e.g. when it bounces off an edge.
func (e *Engine) SetDirection(d Direction) {
	if d == Left || d == Right {
		e.direction = d
	}
}

// Drag puts the pet into the dangling state while held and back to idle on release.
// Mood, needs and speech keep running while held; only state changes wait.
func (e *Engine) Drag(held bool) {
	if held {
		e.held = true
		e.SetState(StateDrag)
		return
	}
	if e.held || e.state == StateDrag {
		e.held = false
		e.SetState(StateIdle)
	}
}

// Held reports whether the user is holding the pet.
func (e *Engine) Held() bool { return e.held }

func (e *Engine) sequence() []int {
	return e.anims[e.state].Sequence(e.direction)
}

func (e *Engine) Name() string         { return e.name }
func (e *Engine) Style() string        { return e.style }
func (e *Engine) State() State         { return e.state }
func (e *Engine) Frame() int           { return e.frame }
func (e *Engine) Direction() Direction { return e.direction }
func (e *Engine) Speech() string       { return e.speech }
func (e *Engine) Mood() Mood           { return e.mood }
func (e *Engine) Hunger() float64      { return e.hunger }
func (e *Engine) Energy() float64      { return e.energy }

// HasChirped reports whether the current sleep episode has reached the point
// where the driver should play its chirp. It resets on every state change.
func (e *Engine) HasChirped() bool { return e.chirped }

func progress(elapsed, total time.Duration) float64 {
	return float64(elapsed) / float64(total)
}

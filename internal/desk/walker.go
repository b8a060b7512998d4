// Package desk moves the pet's window across a bounded desktop according to
// the engine's locomotion states.
package desk

import (
	"log/slog"

	"github.com/sethgrid/chirpet/internal/pet"
)

const (
	WalkSpeed    = 3
	ZoomiesSpeed = 10
	ChaseSpeed   = 6

	// ChaseDeadZone is how close the cursor must be to the window centre
	// before a chasing pet stops closing in.
	ChaseDeadZone = 20
)

// Pet is the slice of the engine the walker drives.
type Pet interface {
	State() pet.State
	Direction() pet.Direction
	SetDirection(pet.Direction)
	SetState(pet.State)
}

// Bounds is the usable horizontal span of the desktop.
type Bounds struct {
	Left, Right int
}

// Walker tracks the window's top-left corner.
type Walker struct {
	bounds Bounds
	width  int
	x, y   int
}

func NewWalker(bounds Bounds, width, x, y int) *Walker {
	w := &Walker{bounds: bounds, width: width, x: x, y: y}
	w.x = w.clampX(x)
	return w
}

func (w *Walker) X() int { return w.x }
func (w *Walker) Y() int { return w.y }

// Window reports the window corner in the form the engine expects.
func (w *Walker) Window() pet.Point {
	return pet.Point{X: float64(w.x), Y: float64(w.y)}
}

// MoveTo places the window directly, e.g. at the end of a drag.
func (w *Walker) MoveTo(x, y int) {
	w.x = w.clampX(x)
	w.y = y
}

// Resize updates the desktop bounds, keeping the window on screen.
func (w *Walker) Resize(bounds Bounds) {
	w.bounds = bounds
	w.x = w.clampX(w.x)
}

func (w *Walker) clampX(x int) int {
	if x+w.width > w.bounds.Right {
		x = w.bounds.Right - w.width
	}
	if x < w.bounds.Left {
		x = w.bounds.Left
	}
	return x
}

// Step advances the window one tick. It returns false when the current state
// does not move the window.
func (w *Walker) Step(p Pet, cursorX float64) bool {
	state := p.State()
	if !state.Locomotion() {
		return false
	}

	var move int
	switch state {
	case pet.StateChase:
		dx := cursorX - float64(w.x+w.width/2)
		switch {
		case dx > -ChaseDeadZone && dx < ChaseDeadZone:
		case dx > 0:
			move = ChaseSpeed
			p.SetDirection(pet.Right)
		default:
			move = -ChaseSpeed
			p.SetDirection(pet.Left)
		}
	case pet.StateMoonwalkRight:
		move = WalkSpeed
		p.SetDirection(pet.Left)
	case pet.StateMoonwalkLeft:
		move = -WalkSpeed
		p.SetDirection(pet.Right)
	case pet.StateZoomies:
		move = int(p.Direction()) * ZoomiesSpeed
	default:
		move = int(p.Direction()) * WalkSpeed
	}

	next := w.x + move
	switch {
	case move < 0 && next < w.bounds.Left:
		next = w.bounds.Left
		w.hitEdge(p, state, pet.Right, pet.StateMoveRight)
	case move > 0 && next+w.width > w.bounds.Right:
		next = w.bounds.Right - w.width
		w.hitEdge(p, state, pet.Left, pet.StateMoveLeft)
	}
	w.x = next
	return true
}

// hitEdge turns the pet around at a desktop edge. away is the direction back
// onto the desktop and bounce the walk that heads that way.
func (w *Walker) hitEdge(p Pet, state pet.State, away pet.Direction, bounce pet.State) {
	switch state {
	case pet.StateZoomies:
		p.SetDirection(away)
	case pet.StateMoveLeft, pet.StateMoveRight:
		p.SetDirection(away)
		p.SetState(bounce)
	default:
		p.SetState(pet.StateIdle)
	}
	slog.Debug("hit desktop edge", "state", state, "x", w.x)
}

package pet

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownStyle is returned when a catalog has no style by that name.
	ErrUnknownStyle = errors.New("unknown style")
	// ErrUndefinedAnimation means a (style, state) pair has no definition in
	// the style or its fallback. This is a configuration error.
	ErrUndefinedAnimation = errors.New("undefined animation")
)

// Playback says what happens when an animation reaches the end of its frames.
type Playback int

const (
	// Loop wraps back to the first frame.
	Loop Playback = iota
	// OneShot transitions to the definition's Next state.
	OneShot
	// Hold stays on the last frame until something else changes the state.
	Hold
)

// AnimationDef is an immutable playback definition for one state of one style.
// Build them with Looping, Then and Held.
type AnimationDef struct {
	Frames   []int
	Interval time.Duration
	Playback Playback
	Next     State

	// Mirrored, when set, replaces Frames while the pet faces left.
	// It must have the same length as Frames.
	Mirrored []int
}

// Looping builds a definition that wraps forever.
func Looping(interval time.Duration, frames ...int) AnimationDef {
	return AnimationDef{Frames: frames, Interval: interval, Playback: Loop}
}

// Then builds a one-shot definition followed by next.
func Then(interval time.Duration, next State, frames ...int) AnimationDef {
	return AnimationDef{Frames: frames, Interval: interval, Playback: OneShot, Next: next}
}

// Held builds a one-shot definition that freezes on its last frame.
func Held(interval time.Duration, frames ...int) AnimationDef {
	return AnimationDef{Frames: frames, Interval: interval, Playback: Hold}
}

// WithMirror returns a copy of d that plays mirrored while facing left.
func (d AnimationDef) WithMirror(frames ...int) AnimationDef {
	d.Mirrored = frames
	return d
}

// Sequence returns the frames to play for the given facing.
func (d AnimationDef) Sequence(dir Direction) []int {
	if dir == Left && len(d.Mirrored) > 0 {
		return d.Mirrored
	}
	return d.Frames
}

// Catalog resolves animation definitions per visual style.
type Catalog interface {
	Lookup(style string, s State) (AnimationDef, error)
}

// Sheet is a loaded sprite sheet. Decoding and slicing live with the renderer;
// the engine only needs to know what it is called and how many cells it has.
type Sheet interface {
	ID() string
	Len() int
}

// resolveStyle looks up every state up front so a style is either fully
// usable or rejected.
func resolveStyle(c Catalog, style string) (map[State]AnimationDef, error) {
	table := make(map[State]AnimationDef, numStates)
	for _, s := range States() {
		def, err := c.Lookup(style, s)
		if err != nil {
			return nil, err
		}
		if len(def.Frames) == 0 {
			return nil, fmt.Errorf("%w: %s/%s has no frames", ErrUndefinedAnimation, style, s)
		}
		if def.Interval <= 0 {
			return nil, fmt.Errorf("%w: %s/%s has no frame interval", ErrUndefinedAnimation, style, s)
		}
		if len(def.Mirrored) > 0 && len(def.Mirrored) != len(def.Frames) {
			return nil, fmt.Errorf("%w: %s/%s mirror length %d, want %d", ErrUndefinedAnimation, style, s, len(def.Mirrored), len(def.Frames))
		}
		if def.Playback == OneShot && !def.Next.Valid() {
			return nil, fmt.Errorf("%w: %s/%s has invalid successor", ErrUndefinedAnimation, style, s)
		}
		table[s] = def
	}
	return table, nil
}

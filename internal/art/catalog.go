// Package art holds the animation catalog: the default per-state playback
// table and sparse per-style overrides.
package art

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sethgrid/chirpet/internal/pet"
)

// DefaultStyle is the style every other style falls back to.
const DefaultStyle = "default"

const ms = time.Millisecond

// Catalog maps (style, state) to an animation definition. Styles only list
// the states they change; everything else comes from the default table.
type Catalog struct {
	base   map[pet.State]pet.AnimationDef
	styles map[string]map[pet.State]pet.AnimationDef
}

// NewCatalog returns a catalog holding only the default style.
func NewCatalog() *Catalog {
	return &Catalog{
		base:   defaultTable(),
		styles: map[string]map[pet.State]pet.AnimationDef{DefaultStyle: {}},
	}
}

// DefaultCatalog returns the default style plus the bundled style overrides.
func DefaultCatalog() (*Catalog, error) {
	c := NewCatalog()
	if err := c.LoadOverrides(strings.NewReader(bundledStyles)); err != nil {
		return nil, fmt.Errorf("failed to load bundled styles: %w", err)
	}
	return c, nil
}

// NormalizeStyle folds a display name such as "Christmas" to its catalog key.
func NormalizeStyle(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return DefaultStyle
	}
	return key
}

// Lookup resolves the definition for state s in style, falling back to the
// default table for states the style does not override.
func (c *Catalog) Lookup(style string, s pet.State) (pet.AnimationDef, error) {
	overrides, ok := c.styles[NormalizeStyle(style)]
	if !ok {
		return pet.AnimationDef{}, fmt.Errorf("%w: %q", pet.ErrUnknownStyle, style)
	}
	if def, ok := overrides[s]; ok {
		return def, nil
	}
	if def, ok := c.base[s]; ok {
		return def, nil
	}
	return pet.AnimationDef{}, fmt.Errorf("%w: %s/%s", pet.ErrUndefinedAnimation, style, s)
}

// Styles lists the known style keys, default first.
func (c *Catalog) Styles() []string {
	var names []string
	for name := range c.styles {
		if name != DefaultStyle {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultStyle}, names...)
}

// HasStyle reports whether the catalog knows the style.
func (c *Catalog) HasStyle(name string) bool {
	_, ok := c.styles[NormalizeStyle(name)]
	return ok
}

func span(from, to int) []int {
	frames := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		frames = append(frames, i)
	}
	return frames
}

func defaultTable() map[pet.State]pet.AnimationDef {
	// Puff inflates, deflates back through the same cells and settles on the idle cell.
	puff := span(70, 80)
	for i := 78; i >= 70; i-- {
		puff = append(puff, i)
	}
	puff = append(puff, 10)

	return map[pet.State]pet.AnimationDef{
		pet.StateIdle:          pet.Looping(1000*ms, 10),
		pet.StateIdleWink:      pet.Then(150*ms, pet.StateIdle, span(0, 10)...),
		pet.StateLookSequence:  pet.Then(200*ms, pet.StateIdle, span(10, 20)...),
		pet.StateSpeak:         pet.Then(150*ms, pet.StateIdle, span(20, 30)...),
		pet.StateMoveRight:     pet.Looping(100*ms, span(30, 40)...),
		pet.StateMoveLeft:      pet.Looping(100*ms, span(40, 50)...),
		pet.StateSleep:         pet.Looping(300*ms, span(50, 60)...),
		pet.StateFlap:          pet.Then(100*ms, pet.StateIdle, span(60, 70)...),
		pet.StatePuff:          pet.Then(150*ms, pet.StateIdle, puff...),
		pet.StateFlapHard:      pet.Then(100*ms, pet.StateIdle, span(80, 90)...),
		pet.StateInquisitive:   pet.Then(200*ms, pet.StateIdle, span(90, 99)...),
		pet.StateSpin:          pet.Then(50*ms, pet.StateIdle, 10),
		pet.StateJump:          pet.Then(50*ms, pet.StateIdle, 10),
		pet.StateShake:         pet.Then(50*ms, pet.StateIdle, 10),
		pet.StateMoonwalkRight: pet.Looping(100*ms, span(40, 50)...),
		pet.StateMoonwalkLeft:  pet.Looping(100*ms, span(30, 40)...),
		pet.StateZoomies:       pet.Looping(50*ms, span(30, 40)...).WithMirror(span(40, 50)...),
		pet.StateChase:         pet.Looping(80*ms, span(30, 40)...),
		pet.StatePreChase:      pet.Then(80*ms, pet.StateChase, span(80, 90)...),
		pet.StateSpawn:         pet.Looping(100*ms, 10),
		pet.StateDrag:          pet.Looping(100*ms, span(60, 70)...),

		// Reserved states. Nothing transitions into these yet.
		pet.StateCornerPop:        pet.Looping(1000*ms, 10),
		pet.StateGhost:            pet.Looping(1000*ms, 10),
		pet.StateDisco:            pet.Looping(100*ms, 10),
		pet.StatePulse:            pet.Looping(100*ms, 10),
		pet.StateCeilingWalkLeft:  pet.Looping(100*ms, span(40, 50)...),
		pet.StateCeilingWalkRight: pet.Looping(100*ms, span(30, 40)...),
	}
}

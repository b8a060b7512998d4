package pet

import (
	"image/color"
	"math"
	"time"
)

const (
	breathPeriod   = 3000 * time.Millisecond
	breathAmount   = 0.03
	wingFirst      = 60
	wingLast       = 69
	wingDrop       = 20.0
	dragWobble     = 10.0
	dragWobbleRate = 200 * time.Millisecond
	spawnMinScale  = 0.1
)

// Sprite identifies one cell of a sprite sheet.
type Sprite struct {
	Sheet string
	Index int
}

// RenderData is everything the renderer needs for one frame.
type RenderData struct {
	Sprite   Sprite
	OffsetX  int
	OffsetY  int
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // degrees

	// Tint is reserved for mood colour overlays and is currently always nil.
	Tint color.Color
}

// RenderData resolves the current sprite and its transform. It reports false
// when there is nothing to draw: no usable sheet, or a frame outside the
// sheet. It does not modify the engine.
func (e *Engine) RenderData() (RenderData, bool) {
	seq := e.sequence()
	if e.frame < 0 || e.frame >= len(seq) || e.sheet == nil {
		return RenderData{}, false
	}
	index := seq[e.frame]
	if index < 0 || index >= e.sheet.Len() {
		return RenderData{}, false
	}

	xf := e.xf
	switch e.state {
	case StateIdle, StateIdleWink:
		cycle := float64(e.bobTimer%breathPeriod) / float64(breathPeriod)
		xf.scaleY = 1 + breathAmount*math.Sin(cycle*2*math.Pi)
	case StateDrag:
		xf.rotation = dragWobble * math.Sin(float64(e.bobTimer)/float64(dragWobbleRate))
	case StateSpawn:
		p := math.Min(1, progress(e.bobTimer, spawnDuration))
		scale := spawnMinScale + (1-spawnMinScale)*p
		xf.scaleX, xf.scaleY = scale, scale
	}
	if index >= wingFirst && index <= wingLast {
		xf.offsetY += wingDrop
	}

	return RenderData{
		Sprite:   Sprite{Sheet: e.sheet.ID(), Index: index},
		OffsetX:  int(math.Round(xf.offsetX)),
		OffsetY:  int(math.Round(xf.offsetY)),
		ScaleX:   xf.scaleX,
		ScaleY:   xf.scaleY,
		Rotation: xf.rotation,
	}, true
}

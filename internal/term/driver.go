// Package term runs the pet in a terminal: the screen is the desktop, the
// mouse is the cursor and the terminal bell is the chirp.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sethgrid/chirpet/internal/art"
	"github.com/sethgrid/chirpet/internal/desk"
	"github.com/sethgrid/chirpet/internal/pet"
)

const (
	// CellWidth and CellHeight convert terminal cells to the pixel units the
	// engine reasons in.
	CellWidth  = 8
	CellHeight = 16

	DefaultTick = 16 * time.Millisecond

	petCols   = 10
	startLeft = 300
)

var moodCycle = []pet.Mood{pet.MoodHappy, pet.MoodSleepy, pet.MoodHyper, pet.MoodGrumpy}

type Options struct {
	Tick time.Duration

	// Styles is the order the style key cycles through.
	Styles []string

	// StyleUpdates delivers style changes made outside the terminal, such as
	// an edit to the config file.
	StyleUpdates <-chan string

	// OnStyle is called after the user picks a new style.
	OnStyle func(style string)
}

type Driver struct {
	screen tcell.Screen
	engine *pet.Engine
	walker *desk.Walker
	sheet  *GlyphSheet
	opts   Options

	cursor    pet.Point
	hasCursor bool

	pressed  bool
	grabbed  bool
	dragging bool
	grabCol  int
	grabRow  int
	grabDX   int
	grabDY   int

	chirped bool
	beeps   int
}

// New places the pet near the bottom right of screen and loads the engine's
// current style as glyphs.
func New(screen tcell.Screen, engine *pet.Engine, opts Options) (*Driver, error) {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	w, h := screen.Size()
	d := &Driver{
		screen: screen,
		engine: engine,
		opts:   opts,
	}
	d.walker = desk.NewWalker(bounds(w), petCols*CellWidth, w*CellWidth-startLeft, groundY(h))
	if err := d.SetStyle(engine.Style()); err != nil {
		return nil, err
	}
	return d, nil
}

func bounds(w int) desk.Bounds {
	return desk.Bounds{Left: 0, Right: w * CellWidth}
}

func groundY(h int) int {
	return max(h-3, 0) * CellHeight
}

// SetStyle swaps the engine onto style, keeping mood and needs.
func (d *Driver) SetStyle(style string) error {
	sheet := NewGlyphSheet(style)
	if err := d.engine.LoadStyle(sheet, art.NormalizeStyle(style)); err != nil {
		return fmt.Errorf("failed to load style %q: %w", style, err)
	}
	d.sheet = sheet
	return nil
}

// Run ticks the engine until ctx is cancelled or the user quits.
func (d *Driver) Run(ctx context.Context) error {
	d.screen.EnableMouse()
	d.screen.HideCursor()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(d.opts.Tick)
	defer ticker.Stop()

	styles := d.opts.StyleUpdates
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !d.handleEvent(ev) {
				return nil
			}
		case style, ok := <-styles:
			if !ok {
				styles = nil
				continue
			}
			if err := d.SetStyle(style); err != nil {
				slog.Warn("ignoring style change", "style", style, "error", err)
			}
		case <-ticker.C:
			d.tick(d.opts.Tick)
			d.draw()
		}
	}
}

func (d *Driver) tick(dt time.Duration) {
	var pos *pet.Positions
	if !d.dragging && d.hasCursor {
		pos = &pet.Positions{Cursor: d.cursor, Window: d.walker.Window()}
	}
	d.engine.Update(dt, pos)
	if !d.dragging {
		d.walker.Step(d.engine, d.cursor.X)
	}

	chirped := d.engine.HasChirped()
	if chirped && !d.chirped {
		_ = d.screen.Beep()
		d.beeps++
	}
	d.chirped = chirped
}

func (d *Driver) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'f':
				d.engine.Feed()
			case 'n':
				d.engine.SayName()
			case 't':
				d.engine.SayRandomThing()
			case 'm':
				d.cycleMood()
			case 's':
				d.cycleStyle()
			}
		}
	case *tcell.EventMouse:
		d.handleMouse(ev)
	case *tcell.EventResize:
		w, h := d.screen.Size()
		d.walker.Resize(bounds(w))
		d.walker.MoveTo(d.walker.X(), groundY(h))
		d.screen.Sync()
	}
	return true
}

func (d *Driver) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	px, py := col*CellWidth+CellWidth/2, row*CellHeight+CellHeight/2
	d.cursor = pet.Point{X: float64(px), Y: float64(py)}
	d.hasCursor = true

	held := ev.Buttons()&tcell.Button1 != 0
	switch {
	case held && !d.pressed:
		d.pressed = true
		if d.onPet(col, row) {
			d.grabbed = true
			d.grabCol, d.grabRow = col, row
			d.grabDX, d.grabDY = px-d.walker.X(), py-d.walker.Y()
		}
	case held && d.grabbed:
		if !d.dragging && (col != d.grabCol || row != d.grabRow) {
			d.dragging = true
			d.engine.Drag(true)
		}
		if d.dragging {
			_, h := d.screen.Size()
			y := min(max(py-d.grabDY, 4*CellHeight), groundY(h))
			d.walker.MoveTo(px-d.grabDX, y)
		}
	case !held && d.pressed:
		if d.dragging {
			d.engine.Drag(false)
		} else if d.grabbed {
			d.engine.HandleInteraction()
		}
		d.pressed, d.grabbed, d.dragging = false, false, false
	}
}

func (d *Driver) onPet(col, row int) bool {
	petCol, petRow := d.walker.X()/CellWidth, d.walker.Y()/CellHeight
	return col >= petCol && col < petCol+petCols && row >= petRow-1 && row <= petRow
}

func (d *Driver) cycleMood() {
	next := moodCycle[0]
	for i, m := range moodCycle {
		if m == d.engine.Mood() {
			next = moodCycle[(i+1)%len(moodCycle)]
		}
	}
	d.engine.SetMood(next)
}

func (d *Driver) cycleStyle() {
	if len(d.opts.Styles) == 0 {
		return
	}
	next := d.opts.Styles[0]
	for i, s := range d.opts.Styles {
		if art.NormalizeStyle(s) == art.NormalizeStyle(d.engine.Style()) {
			next = d.opts.Styles[(i+1)%len(d.opts.Styles)]
		}
	}
	if err := d.SetStyle(next); err != nil {
		slog.Warn("failed to switch style", "style", next, "error", err)
		return
	}
	if d.opts.OnStyle != nil {
		d.opts.OnStyle(next)
	}
}

func (d *Driver) draw() {
	d.screen.Clear()
	_, h := d.screen.Size()

	if rd, ok := d.engine.RenderData(); ok {
		face := d.sheet.Face(rd.Sprite.Index)
		switch {
		case rd.ScaleX < 0.5:
			face = "."
		case rd.Rotation > 90 && rd.Rotation < 270:
			face = flip(face)
		case d.dragging && (rd.Rotation > 5 || rd.Rotation < -5):
			face = flip(face)
		}

		style := d.sheet.Style()
		width := len([]rune(face))
		col := (d.walker.X()+rd.OffsetX)/CellWidth + (petCols-width)/2
		row := (d.walker.Y() + rd.OffsetY) / CellHeight
		d.put(col, row, face, style)
		if hat := d.sheet.Hat(); hat != "" {
			d.put(col+(width-len([]rune(hat)))/2, row-1, hat, style)
		}
		if speech := d.engine.Speech(); speech != "" {
			d.put(col, row-3, "( "+speech+" )", tcell.StyleDefault.Reverse(true))
		}
	}

	status := fmt.Sprintf("%s  %s  hunger %.0f  energy %.0f  [f]eed [n]ame [t]alk [m]ood [s]tyle [q]uit",
		d.engine.Name(), d.engine.Mood(), d.engine.Hunger(), d.engine.Energy())
	d.put(0, h-1, status, tcell.StyleDefault.Dim(true))
	d.screen.Show()
}

func (d *Driver) put(col, row int, text string, style tcell.Style) {
	w, h := d.screen.Size()
	if row < 0 || row >= h {
		return
	}
	for i, r := range []rune(text) {
		if x := col + i; x >= 0 && x < w {
			d.screen.SetContent(x, row, r, nil, style)
		}
	}
}

package term

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/sethgrid/chirpet/internal/art"
	"github.com/sethgrid/chirpet/internal/pet"
)

func newDriver(t *testing.T, opts Options) (*Driver, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	catalog, err := art.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	e, err := pet.NewEngine("Pip", catalog, art.DefaultStyle, pet.NewSeededRandom(7))
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(screen, e, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return d, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func mouse(col, row int, buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(col, row, buttons, tcell.ModNone)
}

func screenText(s tcell.SimulationScreen) []string {
	cells, w, h := s.GetContents()
	lines := make([]string, h)
	for y := range h {
		var b strings.Builder
		for x := range w {
			runes := cells[y*w+x].Runes
			if len(runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(runes[0])
		}
		lines[y] = b.String()
	}
	return lines
}

func TestNewPlacesPetOnTheGround(t *testing.T) {
	d, _ := newDriver(t, Options{})
	if d.walker.Y() != 21*CellHeight {
		t.Errorf("y = %d, want %d", d.walker.Y(), 21*CellHeight)
	}
	if want := 80*CellWidth - startLeft; d.walker.X() != want {
		t.Errorf("x = %d, want %d", d.walker.X(), want)
	}
	if d.opts.Tick != DefaultTick {
		t.Errorf("tick = %v, want %v", d.opts.Tick, DefaultTick)
	}
}

func TestKeys(t *testing.T) {
	d, _ := newDriver(t, Options{})
	d.engine.SetState(pet.StateIdle)
	d.engine.Restore(pet.Snapshot{Mood: pet.MoodGrumpy, Hunger: 60, Energy: 50})

	if !d.handleEvent(key('f')) {
		t.Fatal("feed should not quit")
	}
	if d.engine.Hunger() != 0 || d.engine.Speech() != "Mmm!" {
		t.Errorf("feed: hunger %v speech %q", d.engine.Hunger(), d.engine.Speech())
	}

	d.handleEvent(key('n'))
	if d.engine.Speech() != "I am Pip!" {
		t.Errorf("name: speech %q", d.engine.Speech())
	}

	d.handleEvent(key('m'))
	if d.engine.Mood() != pet.MoodSleepy {
		t.Errorf("mood after cycling from happy = %s, want sleepy", d.engine.Mood())
	}

	for _, ev := range []tcell.Event{key('q'), tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)} {
		if d.handleEvent(ev) {
			t.Errorf("%v should quit", ev)
		}
	}
}

func TestStyleCycle(t *testing.T) {
	var saved []string
	d, _ := newDriver(t, Options{
		Styles:  []string{"Default", "Christmas", "Sombrero"},
		OnStyle: func(s string) { saved = append(saved, s) },
	})
	d.engine.Restore(pet.Snapshot{Mood: pet.MoodHyper, Hunger: 30, Energy: 70})

	d.handleEvent(key('s'))
	d.handleEvent(key('s'))
	d.handleEvent(key('s'))

	want := []string{"Christmas", "Sombrero", "Default"}
	if strings.Join(saved, ",") != strings.Join(want, ",") {
		t.Errorf("saved styles = %v, want %v", saved, want)
	}
	if d.engine.Style() != "default" {
		t.Errorf("engine style = %q", d.engine.Style())
	}
	if d.engine.Mood() != pet.MoodHyper || d.engine.Hunger() != 30 {
		t.Error("mood and needs should survive a style change")
	}
}

func TestDrawShowsPetAndSpeech(t *testing.T) {
	d, screen := newDriver(t, Options{})
	d.engine.SetState(pet.StateIdle)
	d.engine.SayName()
	d.tick(DefaultTick)
	d.draw()

	text := strings.Join(screenText(screen), "\n")
	if !strings.Contains(text, "(o.o)") {
		t.Errorf("pet face missing from screen:\n%s", text)
	}
	if !strings.Contains(text, "( I am Pip! )") {
		t.Errorf("speech bubble missing from screen:\n%s", text)
	}
	if !strings.Contains(text, "Pip  happy") {
		t.Errorf("status line missing from screen:\n%s", text)
	}
}

func TestDrawHat(t *testing.T) {
	d, screen := newDriver(t, Options{})
	if err := d.SetStyle("Sombrero"); err != nil {
		t.Fatal(err)
	}
	d.engine.SetState(pet.StateIdle)
	d.draw()

	if text := strings.Join(screenText(screen), "\n"); !strings.Contains(text, "_/^\\_") {
		t.Errorf("sombrero missing:\n%s", text)
	}
}

func TestClickInteracts(t *testing.T) {
	d, _ := newDriver(t, Options{})
	d.engine.SetState(pet.StateIdle)
	col, row := d.walker.X()/CellWidth+2, d.walker.Y()/CellHeight

	d.handleEvent(mouse(col, row, tcell.Button1))
	d.handleEvent(mouse(col, row, tcell.ButtonNone))

	if s := d.engine.State(); s != pet.StateJump && s != pet.StateSpin {
		t.Errorf("click should make the pet jump or spin, got %s", s)
	}
}

func TestClickAwayIgnored(t *testing.T) {
	d, _ := newDriver(t, Options{})
	d.engine.SetState(pet.StateIdle)

	d.handleEvent(mouse(0, 0, tcell.Button1))
	d.handleEvent(mouse(0, 0, tcell.ButtonNone))

	if d.engine.State() != pet.StateIdle {
		t.Errorf("state = %s, want idle", d.engine.State())
	}
}

func TestDrag(t *testing.T) {
	d, _ := newDriver(t, Options{})
	d.engine.SetState(pet.StateIdle)
	col, row := d.walker.X()/CellWidth+2, d.walker.Y()/CellHeight
	startX := d.walker.X()

	d.handleEvent(mouse(col, row, tcell.Button1))
	d.handleEvent(mouse(col-10, row-5, tcell.Button1))
	if d.engine.State() != pet.StateDrag {
		t.Fatalf("state = %s, want drag", d.engine.State())
	}
	if d.walker.X() != startX-10*CellWidth {
		t.Errorf("x = %d, want %d", d.walker.X(), startX-10*CellWidth)
	}

	// The engine gets no positions while held, and the walker stays put.
	x := d.walker.X()
	d.tick(DefaultTick)
	if d.walker.X() != x {
		t.Error("walker moved during drag")
	}

	d.handleEvent(mouse(col-10, row-5, tcell.ButtonNone))
	if d.engine.State() != pet.StateIdle {
		t.Errorf("state after release = %s, want idle", d.engine.State())
	}
}

func TestChirpRingsBellOnce(t *testing.T) {
	d, _ := newDriver(t, Options{})
	d.engine.SetState(pet.StateSleep)
	d.engine.SetMood(pet.MoodSleepy)
	d.engine.Restore(pet.Snapshot{Mood: pet.MoodSleepy, Energy: 90})

	for range 200 {
		d.tick(DefaultTick)
	}
	if d.beeps != 1 {
		t.Errorf("beeps = %d, want 1", d.beeps)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	d, screen := newDriver(t, Options{Tick: time.Millisecond})
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not stop on q")
	}
}

func TestRunAppliesStyleUpdates(t *testing.T) {
	updates := make(chan string, 1)
	d, _ := newDriver(t, Options{Tick: time.Millisecond, StyleUpdates: updates})
	updates <- "Christmas"
	close(updates)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if d.engine.Style() != "christmas" {
		t.Errorf("style = %q, want christmas", d.engine.Style())
	}
}

func TestFlip(t *testing.T) {
	if got := flip("(o.o)>"); got != "<(o.o)" {
		t.Errorf("flip = %q", got)
	}
	if got := NewGlyphSheet("Default").Face(100); got != "" {
		t.Errorf("off-sheet face = %q", got)
	}
}

func TestStatusLineClipsByRune(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(12, 24)
	t.Cleanup(screen.Fini)

	catalog, err := art.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	// The twelfth byte falls inside the last Ñ.
	e, err := pet.NewEngine("aÑÑÑÑÑÑ", catalog, art.DefaultStyle, pet.NewSeededRandom(7))
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(screen, e, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	d.draw()

	lines := screenText(screen)
	status := lines[len(lines)-1]
	if strings.ContainsRune(status, utf8.RuneError) {
		t.Fatalf("status line has a broken rune: %q", status)
	}
	if want := "aÑÑÑÑÑÑ  hap"; status != want {
		t.Errorf("status line = %q, want %q", status, want)
	}
}

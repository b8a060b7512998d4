package desk

import (
	"testing"
	"time"

	"github.com/sethgrid/chirpet/internal/pet"
)

type fakePet struct {
	state pet.State
	dir   pet.Direction
}

func (f *fakePet) State() pet.State             { return f.state }
func (f *fakePet) Direction() pet.Direction     { return f.dir }
func (f *fakePet) SetDirection(d pet.Direction) { f.dir = d }
func (f *fakePet) SetState(s pet.State) {
	f.state = s
	switch s {
	case pet.StateMoveLeft:
		f.dir = pet.Left
	case pet.StateMoveRight:
		f.dir = pet.Right
	}
}

var desktop = Bounds{Left: 0, Right: 1000}

func TestStepSpeeds(t *testing.T) {
	tests := []struct {
		name    string
		state   pet.State
		dir     pet.Direction
		cursor  float64
		wantX   int
		wantDir pet.Direction
	}{
		{"walk right", pet.StateMoveRight, pet.Right, 0, 503, pet.Right},
		{"walk left", pet.StateMoveLeft, pet.Left, 0, 497, pet.Left},
		{"zoomies", pet.StateZoomies, pet.Left, 0, 490, pet.Left},
		{"moonwalk right faces left", pet.StateMoonwalkRight, pet.Right, 0, 503, pet.Left},
		{"moonwalk left faces right", pet.StateMoonwalkLeft, pet.Left, 0, 497, pet.Right},
		{"chase towards cursor", pet.StateChase, pet.Left, 900, 506, pet.Right},
		{"chase away left", pet.StateChase, pet.Right, 100, 494, pet.Left},
		{"chase dead zone", pet.StateChase, pet.Left, 569, 500, pet.Left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWalker(desktop, 100, 500, 300)
			p := &fakePet{state: tt.state, dir: tt.dir}
			if !w.Step(p, tt.cursor) {
				t.Fatal("expected the window to move")
			}
			if w.X() != tt.wantX {
				t.Errorf("x = %d, want %d", w.X(), tt.wantX)
			}
			if p.dir != tt.wantDir {
				t.Errorf("direction = %d, want %d", p.dir, tt.wantDir)
			}
			if w.Y() != 300 {
				t.Errorf("y changed to %d", w.Y())
			}
		})
	}
}

func TestStepIgnoresStationaryStates(t *testing.T) {
	w := NewWalker(desktop, 100, 500, 300)
	for _, s := range []pet.State{pet.StateIdle, pet.StateSleep, pet.StateSpin, pet.StateDrag, pet.StatePreChase} {
		if w.Step(&fakePet{state: s, dir: pet.Right}, 0) {
			t.Errorf("%s should not move the window", s)
		}
	}
	if w.X() != 500 {
		t.Errorf("x = %d, want 500", w.X())
	}
}

func TestEdges(t *testing.T) {
	tests := []struct {
		name      string
		startX    int
		state     pet.State
		dir       pet.Direction
		wantX     int
		wantState pet.State
		wantDir   pet.Direction
	}{
		{"walk bounces off left", 1, pet.StateMoveLeft, pet.Left, 0, pet.StateMoveRight, pet.Right},
		{"walk bounces off right", 899, pet.StateMoveRight, pet.Right, 900, pet.StateMoveLeft, pet.Left},
		{"zoomies reverse on the left", 5, pet.StateZoomies, pet.Left, 0, pet.StateZoomies, pet.Right},
		{"zoomies reverse on the right", 895, pet.StateZoomies, pet.Right, 900, pet.StateZoomies, pet.Left},
		{"moonwalk stops", 899, pet.StateMoonwalkRight, pet.Right, 900, pet.StateIdle, pet.Left},
		{"chase stops", 2, pet.StateChase, pet.Right, 0, pet.StateIdle, pet.Left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWalker(desktop, 100, tt.startX, 300)
			p := &fakePet{state: tt.state, dir: tt.dir}
			w.Step(p, -500)
			if w.X() != tt.wantX {
				t.Errorf("x = %d, want %d", w.X(), tt.wantX)
			}
			if p.state != tt.wantState {
				t.Errorf("state = %s, want %s", p.state, tt.wantState)
			}
			if p.dir != tt.wantDir {
				t.Errorf("direction = %d, want %d", p.dir, tt.wantDir)
			}
		})
	}
}

func TestWalkerStaysOnDesk(t *testing.T) {
	w := NewWalker(desktop, 100, 2000, 0)
	if w.X() != 900 {
		t.Errorf("x = %d, want clamped 900", w.X())
	}
	w.MoveTo(-40, 10)
	if w.X() != 0 || w.Y() != 10 {
		t.Errorf("MoveTo = (%d, %d), want (0, 10)", w.X(), w.Y())
	}
	w.MoveTo(800, 10)
	w.Resize(Bounds{Left: 0, Right: 600})
	if w.X() != 500 {
		t.Errorf("x after resize = %d, want 500", w.X())
	}

	p := &fakePet{state: pet.StateZoomies, dir: pet.Right}
	for range 500 {
		w.Step(p, 0)
		if w.X() < 0 || w.X()+100 > 600 {
			t.Fatalf("window left the desk at x=%d", w.X())
		}
	}
}

func TestWithEngine(t *testing.T) {
	e, err := pet.NewEngine("Pip", stubCatalog{}, "default", pet.NewSeededRandom(1))
	if err != nil {
		t.Fatal(err)
	}
	e.SetState(pet.StateMoveLeft)
	w := NewWalker(desktop, 100, 4, 0)
	w.Step(e, 0)
	w.Step(e, 0)
	if e.State() != pet.StateMoveRight || e.Direction() != pet.Right {
		t.Errorf("engine should bounce: %s %d", e.State(), e.Direction())
	}
}

type stubCatalog struct{}

func (stubCatalog) Lookup(string, pet.State) (pet.AnimationDef, error) {
	return pet.Looping(100*time.Millisecond, 0), nil
}

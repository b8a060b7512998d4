package pet

import (
	"fmt"
	"strings"
)

// State is the pet's current activity. Exactly one is active at a time.
type State int

const (
	StateIdle State = iota
	StateIdleWink
	StateLookSequence
	StateSpeak
	StateMoveRight
	StateMoveLeft
	StateSleep
	StateFlap
	StatePuff
	StateFlapHard
	StateInquisitive
	StateCornerPop
	StateSpin
	StateJump
	StateShake
	StateMoonwalkRight
	StateMoonwalkLeft
	StateZoomies
	StateGhost
	StateChase
	StateDisco
	StatePulse
	StateCeilingWalkLeft
	StateCeilingWalkRight
	StateSpawn
	StateDrag
	StatePreChase

	numStates
)

var stateNames = [numStates]string{
	StateIdle:             "idle",
	StateIdleWink:         "idle_wink",
	StateLookSequence:     "look_sequence",
	StateSpeak:            "speak",
	StateMoveRight:        "move_right",
	StateMoveLeft:         "move_left",
	StateSleep:            "sleep",
	StateFlap:             "flap",
	StatePuff:             "puff",
	StateFlapHard:         "flap_hard",
	StateInquisitive:      "inquisitive",
	StateCornerPop:        "corner_pop",
	StateSpin:             "spin",
	StateJump:             "jump",
	StateShake:            "shake",
	StateMoonwalkRight:    "moonwalk_right",
	StateMoonwalkLeft:     "moonwalk_left",
	StateZoomies:          "zoomies",
	StateGhost:            "ghost",
	StateChase:            "chase",
	StateDisco:            "disco",
	StatePulse:            "pulse",
	StateCeilingWalkLeft:  "ceiling_walk_left",
	StateCeilingWalkRight: "ceiling_walk_right",
	StateSpawn:            "spawn",
	StateDrag:             "drag",
	StatePreChase:         "pre_chase",
}

// States returns every declared state in declaration order.
func States() []State {
	out := make([]State, numStates)
	for i := range out {
		out[i] = State(i)
	}
	return out
}

func (s State) String() string {
	if s < 0 || s >= numStates {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Valid reports whether s is one of the declared states.
func (s State) Valid() bool {
	return s >= 0 && s < numStates
}

// ParseState accepts the snake_case name of a state, case-insensitively.
func ParseState(name string) (State, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range stateNames {
		if n == key {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("unknown state %q", name)
}

// Locomotion reports whether the state moves the pet window across the desk.
func (s State) Locomotion() bool {
	switch s {
	case StateMoveRight, StateMoveLeft, StateMoonwalkRight, StateMoonwalkLeft, StateZoomies, StateChase:
		return true
	}
	return false
}

// Mood biases idle behaviour and is overridden by needs.
type Mood string

const (
	MoodHappy  Mood = "happy"
	MoodSleepy Mood = "sleepy"
	MoodHyper  Mood = "hyper"
	MoodGrumpy Mood = "grumpy"
)

// ParseMood accepts a mood name case-insensitively.
func ParseMood(name string) (Mood, error) {
	switch m := Mood(strings.ToLower(strings.TrimSpace(name))); m {
	case MoodHappy, MoodSleepy, MoodHyper, MoodGrumpy:
		return m, nil
	}
	return "", fmt.Errorf("unknown mood %q", name)
}

// Direction is the pet's facing: +1 right, -1 left.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

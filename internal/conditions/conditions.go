package conditions

import (
	"slices"
	"strings"
	"time"

	"github.com/sethgrid/chirpet/internal/pet"
)

type Condition string

const (
	CondMissedYou Condition = "missed-you"
	CondStarving  Condition = "starving"
	CondHungry    Condition = "hungry"
	CondTired     Condition = "tired"
	CondGrumpy    Condition = "grumpy"
	CondSleepy    Condition = "sleepy"
	CondHyper     Condition = "hyper"
	CondHappy     Condition = "happy"
)

const (
	hungryAbove    = 80
	tiredBelow     = 20
	starvingAt     = 95
	missedYouAfter = 24 * time.Hour
)

type DerivedStatus struct {
	Health     int
	Conditions map[Condition]bool
	Primary    Condition
	AllOrdered []Condition
}

// DeriveStatus describes a saved pet the way the engine would treat it on
// the next tick, plus how long it has been left alone. Starving follows
// hunger alone; health is only carried through for display.
func DeriveStatus(s pet.Snapshot, now time.Time, health int) DerivedStatus {
	conds := make(map[Condition]bool)
	var allOrdered []Condition
	add := func(c Condition) {
		if !conds[c] {
			conds[c] = true
			allOrdered = append(allOrdered, c)
		}
	}

	// Priority 1: missed-you
	if !s.SavedAt.IsZero() && now.Sub(s.SavedAt) > missedYouAfter {
		add(CondMissedYou)
	}

	// Priority 2: starving
	if s.Hunger >= starvingAt {
		add(CondStarving)
	}

	// Priority 3: needs, in the order the engine applies them
	if s.Hunger > hungryAbove {
		add(CondHungry)
	}
	if s.Energy < tiredBelow {
		add(CondTired)
	}

	// Priority 4: mood
	switch s.Mood {
	case pet.MoodGrumpy:
		add(CondGrumpy)
	case pet.MoodSleepy:
		add(CondSleepy)
	case pet.MoodHyper:
		add(CondHyper)
	}

	// Priority 5: happy (default if nothing else applies)
	if len(allOrdered) == 0 || (len(allOrdered) == 1 && conds[CondMissedYou]) {
		add(CondHappy)
	}

	primary := CondHappy
	if len(allOrdered) > 0 {
		primary = allOrdered[0]
	}

	return DerivedStatus{
		Health:     health,
		Conditions: conds,
		Primary:    primary,
		AllOrdered: allOrdered,
	}
}

// FormatConditions formats a slice of conditions into a comma-separated string.
// Returns "happy" if the slice is empty.
// Special handling: if "starving" is present, all other conditions are ignored
// except "missed-you", which is appended as "and missed you".
func FormatConditions(conds []Condition) string {
	if len(conds) == 0 {
		return "happy"
	}

	missed := slices.Contains(conds, CondMissedYou)
	if slices.Contains(conds, CondStarving) {
		if missed {
			return "starving and missed you"
		}
		return "starving"
	}

	var parts []string
	for _, c := range conds {
		if c == CondMissedYou {
			continue
		}
		parts = append(parts, string(c))
	}

	if len(parts) == 0 {
		return "missed you"
	}

	result := strings.Join(parts, ", ")
	if missed {
		result += " and missed you"
	}
	return result
}

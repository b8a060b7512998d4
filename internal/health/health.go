package health

type ComputationMode string

const (
	ComputationAverage  ComputationMode = "average"
	ComputationWeighted ComputationMode = "weighted"
)

// ComputeHealth folds hunger and energy into a single 0-100 wellbeing score.
// Hunger counts against the pet, so it enters as satiety (100 - hunger).
func ComputeHealth(hunger, energy float64, mode ComputationMode) int {
	satiety := 100 - hunger

	var health int
	switch mode {
	case ComputationWeighted:
		health = int(satiety*0.6 + energy*0.4)
	default: // average
		health = int((satiety + energy) / 2)
	}

	// Clamp to [0, 100]
	if health < 0 {
		health = 0
	}
	if health > 100 {
		health = 100
	}

	return health
}

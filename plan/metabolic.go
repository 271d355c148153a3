package plan

import "fmt"

// ActivityLevel is the closed set of daily-activity categories. Multipliers
// follow the standard TDEE ladder from sedentary (1.2) to extra active (1.9).
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtraActive      ActivityLevel = "extra_active"
)

// ActivityLevels lists every valid level in increasing-multiplier order.
var ActivityLevels = []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtraActive}

// Multiplier returns the TDEE multiplier for the level. A level outside the
// enum is a programming error (the collector rejects unknown strings before
// they reach the engine), so this panics rather than guessing.
func (l ActivityLevel) Multiplier() float64 {
	switch l {
	case Sedentary:
		return 1.2
	case LightlyActive:
		return 1.375
	case ModeratelyActive:
		return 1.55
	case VeryActive:
		return 1.725
	case ExtraActive:
		return 1.9
	}
	panic(fmt.Sprintf("unknown activity level %q", string(l)))
}

// ParseActivityLevel validates a raw string against the enum.
func ParseActivityLevel(s string) (ActivityLevel, bool) {
	l := ActivityLevel(s)
	for _, known := range ActivityLevels {
		if l == known {
			return l, true
		}
	}
	return "", false
}

// basalEnergy computes resting daily energy expenditure (kcal/day) via
// Mifflin-St Jeor: 10·weight + 6.25·height − 5·age, +5 for male, −161 for
// female. Total over the stated domains; out-of-domain inputs (e.g. a
// weight small enough to go negative) propagate unchecked.
func basalEnergy(weightKG, heightCM float64, age int, sex string) float64 {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if sex == "male" {
		return bmr + 5
	}
	return bmr - 161
}

// expenditure converts basal energy to total daily energy expenditure.
func expenditure(basal float64, level ActivityLevel) float64 {
	return basal * level.Multiplier()
}

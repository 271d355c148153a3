package plan

import (
	"math"
	"testing"
)

/* ─── Mifflin-St Jeor accuracy tests ─────────────────────────────────── */

// TestBasalEnergy_Male verifies the male formula with known inputs:
// 10*70 + 6.25*170 - 5*30 + 5 = 1617.5
func TestBasalEnergy_Male(t *testing.T) {
	got := basalEnergy(70, 170, 30, "male")
	if math.Abs(got-1617.5) > 1e-9 {
		t.Errorf("male BMR = %f, want 1617.5", got)
	}
}

// TestBasalEnergy_Female verifies the female formula with the same inputs:
// 10*70 + 6.25*170 - 5*30 - 161 = 1451.5
func TestBasalEnergy_Female(t *testing.T) {
	got := basalEnergy(70, 170, 30, "female")
	if math.Abs(got-1451.5) > 1e-9 {
		t.Errorf("female BMR = %f, want 1451.5", got)
	}
}

/* ─── Activity level tests ───────────────────────────────────────────── */

// TestActivityMultipliers_MonotonicAndBounded verifies the multiplier ladder
// strictly increases across the enum and stays within [1.2, 1.9].
func TestActivityMultipliers_MonotonicAndBounded(t *testing.T) {
	prev := 0.0
	for _, level := range ActivityLevels {
		m := level.Multiplier()
		if m <= prev {
			t.Errorf("multiplier for %s = %f, not greater than previous %f", level, m, prev)
		}
		if m < 1.2 || m > 1.9 {
			t.Errorf("multiplier for %s = %f, outside [1.2, 1.9]", level, m)
		}
		prev = m
	}
}

// TestExpenditure verifies TDEE = basal × multiplier.
func TestExpenditure(t *testing.T) {
	got := expenditure(1451.5, LightlyActive)
	want := 1451.5 * 1.375
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expenditure = %f, want %f", got, want)
	}
}

// TestParseActivityLevel verifies that every enum value round-trips and that
// unknown strings (including the similar-but-wrong "moderate") are rejected.
func TestParseActivityLevel(t *testing.T) {
	for _, level := range ActivityLevels {
		got, ok := ParseActivityLevel(string(level))
		if !ok || got != level {
			t.Errorf("ParseActivityLevel(%q) = %q, %v; want %q, true", level, got, ok, level)
		}
	}

	for _, bad := range []string{"", "moderate", "MODERATELY_ACTIVE", "couch"} {
		if _, ok := ParseActivityLevel(bad); ok {
			t.Errorf("ParseActivityLevel(%q) = ok, want rejection", bad)
		}
	}
}

// TestMultiplier_UnknownPanics verifies that dispatching an out-of-enum level
// is treated as a programming error.
func TestMultiplier_UnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown activity level")
		}
	}()
	ActivityLevel("couch").Multiplier()
}

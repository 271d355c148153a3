package plan

import "math"

// Energy density of body-mass change: kcal equivalent of 1 kg.
const kcalPerKG = 7700.0

// weeksPerMonth converts elapsed deficit weeks to months for the
// suppression curve.
const weeksPerMonth = 4.33

// AdaptationProfile holds the calibration constants for metabolic
// adaptation: the body's downward adjustment of expenditure during a
// sustained deficit and its gradual recovery afterward. Two constant sets
// have been used over time; both are kept as named profiles so the engine
// can be recalibrated without touching the simulation.
type AdaptationProfile struct {
	// RatePerMonth scales suppression per (curve-transformed) month in deficit.
	RatePerMonth float64
	// MaxAdaptation caps total suppression; the factor never drops below
	// 1 − MaxAdaptation.
	MaxAdaptation float64
	// RecoveryDecay is the per-week geometric decay applied to residual
	// suppression during post-deficit maintenance.
	RecoveryDecay float64
	// LinearGrowth switches the suppression curve from square-root (default)
	// to linear in elapsed months.
	LinearGrowth bool
}

var (
	// DefaultAdaptation is the current calibration: square-root suppression
	// growth with a 0.67 weekly recovery decay.
	DefaultAdaptation = AdaptationProfile{
		RatePerMonth:  0.05,
		MaxAdaptation: 0.15,
		RecoveryDecay: 0.67,
	}

	// LegacyAdaptation is the earlier calibration: linear suppression growth
	// with a 0.75 weekly recovery decay. Kept for comparison runs.
	LegacyAdaptation = AdaptationProfile{
		RatePerMonth:  0.05,
		MaxAdaptation: 0.15,
		RecoveryDecay: 0.75,
		LinearGrowth:  true,
	}
)

// adaptationFactor converts elapsed deficit weeks to the expenditure
// multiplier for that week. Week 0 → 1 (no suppression); the factor
// decreases with time and never drops below 1 − MaxAdaptation. The
// square-root curve front-loads adaptation: most of it accrues in the
// first months, flattening after.
func (p AdaptationProfile) adaptationFactor(weeksInDeficit float64) float64 {
	months := weeksInDeficit / weeksPerMonth
	growth := math.Sqrt(months)
	if p.LinearGrowth {
		growth = months
	}
	suppression := p.RatePerMonth * growth
	if suppression > p.MaxAdaptation {
		suppression = p.MaxAdaptation
	}
	return 1 - suppression
}

// postDeficitFactor is the expenditure multiplier during post-deficit
// maintenance: half of the deficit-end suppression is recovered
// immediately, and the remainder decays geometrically per elapsed week
// (weeksElapsed is 0 for the phase's first week).
func (p AdaptationProfile) postDeficitFactor(deficitEndFactor float64, weeksElapsed int) float64 {
	remaining := (1 - deficitEndFactor) / 2 * math.Pow(p.RecoveryDecay, float64(weeksElapsed))
	return 1 - remaining
}

// reverseFactor walks the remaining suppression out linearly across the
// planned reverse weeks, reaching full recovery (1.0) on the final planned
// week. week is 1-based within the phase.
func reverseFactor(startFactor float64, week, plannedWeeks int) float64 {
	f := startFactor + (1-startFactor)*float64(week)/float64(plannedWeeks)
	if f > 1 {
		return 1
	}
	return f
}

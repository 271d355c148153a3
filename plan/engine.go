package plan

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// Deficit duration gets a 10% buffer over the naive kcal arithmetic and is
// clamped to [4, 52] weeks regardless of how extreme the goal is.
const (
	deficitBufferFactor = 1.1
	minDeficitWeeks     = 4
	maxDeficitWeeks     = 52
)

const (
	postDeficitWeeks = 2

	// Weight-change efficiency: the deficit phase degrades from 1.0 by 0.3%
	// per elapsed week, floored at 0.9; post-deficit maintenance holds 0.9;
	// reverse-diet surpluses store at 0.9.
	deficitEfficiencyLossPerWeek = 0.003
	minDeficitEfficiency         = 0.9
	postDeficitEfficiency        = 0.9
	surplusStorageEfficiency     = 0.9
)

// ErrBadStartDate is returned when Input.StartDate fails to parse. The
// engine fails before simulating; no partial plan is produced.
var ErrBadStartDate = errors.New("start date must be YYYY-MM-DD")

// Engine generates projections under a fixed adaptation profile.
type Engine struct {
	Profile AdaptationProfile
}

// Generate builds a plan with the default adaptation profile.
func Generate(in Input) (FullPlan, error) {
	return Engine{Profile: DefaultAdaptation}.Generate(in)
}

// simState carries the running simulation values across phases: current
// weight, cumulative change, the calendar pointer, the 1-based week counter,
// and the previously emitted week's rounded target (nil before week 1).
// Each phase is a transition (state) -> (state, emitted weeks).
type simState struct {
	weight       float64
	cumulativeKG float64
	date         time.Time
	weekNumber   int
	prevTarget   *int
}

// Generate runs the five phases in fixed order and returns the ordered
// week records. The only input the engine validates itself is StartDate;
// everything else is assumed collector-validated.
func (e Engine) Generate(in Input) (FullPlan, error) {
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadStartDate, in.StartDate)
	}

	deficitLevel := resolveLevel(in.DeficitActivityLevel, in.InitialActivityLevel)
	reverseLevel := resolveLevel(in.ReverseActivityLevel, in.InitialActivityLevel)
	newMaintLevel := resolveLevel(in.NewMaintenanceActivityLevel, in.InitialActivityLevel)

	s := simState{weight: in.WeightKG, date: start, weekNumber: 1}
	var out FullPlan

	s, out = e.initialMaintenance(in, s, out)

	var deficitEndFactor float64
	s, out, deficitEndFactor = e.calorieDeficit(in, deficitLevel, s, out)

	var postEndFactor float64
	s, out, postEndFactor = e.postDeficitMaintenance(in, deficitLevel, deficitEndFactor, s, out)

	s, out = e.reverseDiet(in, reverseLevel, postEndFactor, s, out)
	_, out = e.newMaintenance(in, newMaintLevel, s, out)

	return out, nil
}

func resolveLevel(override *ActivityLevel, initial ActivityLevel) ActivityLevel {
	if override != nil {
		return *override
	}
	return initial
}

// emitWeek applies the shared per-week procedure: weekly balance from the
// unrounded calorie values, weight delta via the phase-adjusted kcal-per-kg
// divisor, record emission with calorie figures rounded, then a 7-day
// calendar advance. Weight figures stay full precision.
func emitWeek(s simState, phase Phase, target, tdee, kcalPerKGDivisor float64) (simState, WeekRecord) {
	balance := 7 * (target - tdee)
	deltaKG := balance / kcalPerKGDivisor
	s.cumulativeKG += deltaKG
	s.weight += deltaKG

	roundedTarget := int(math.Round(target))
	var change *int
	if s.prevTarget != nil {
		diff := roundedTarget - *s.prevTarget
		change = &diff
	}

	rec := WeekRecord{
		WeekNumber:                        s.weekNumber,
		StartDate:                         DateOnly{s.date},
		EndDate:                           DateOnly{s.date.AddDate(0, 0, 6)},
		Phase:                             phase,
		TargetCalories:                    roundedTarget,
		CalorieChangeFromPreviousWeek:     change,
		EstimatedTDEE:                     int(math.Round(tdee)),
		EstimatedWeeklyBalance:            int(math.Round(balance)),
		EstimatedWeeklyWeightChangeKG:     deltaKG,
		EstimatedCumulativeWeightChangeKG: s.cumulativeKG,
		EstimatedEndWeightKG:              s.weight,
	}

	s.prevTarget = &roundedTarget
	s.date = s.date.AddDate(0, 0, 7)
	s.weekNumber++
	return s, rec
}

// initialMaintenance emits the single lead-in week at the stated current
// maintenance calories, expenditure at initial weight and activity, no
// adaptation.
func (e Engine) initialMaintenance(in Input, s simState, out FullPlan) (simState, FullPlan) {
	tdee := expenditure(basalEnergy(in.WeightKG, in.HeightCM, in.Age, in.Sex), in.InitialActivityLevel)
	s, rec := emitWeek(s, PhaseInitialMaintenance, in.CurrentMaintenanceCalories, tdee, kcalPerKG)
	return s, append(out, rec)
}

// deficitDuration is ceil(lossKG·7700 / (deficit·7) × 1.1) clamped to
// [4, 52] weeks.
func deficitDuration(in Input) int {
	weeks := int(math.Ceil(in.TargetWeightLossKG * kcalPerKG / (in.DailyDeficitCalories * 7) * deficitBufferFactor))
	if weeks < minDeficitWeeks {
		weeks = minDeficitWeeks
	}
	if weeks > maxDeficitWeeks {
		weeks = maxDeficitWeeks
	}
	return weeks
}

// calorieDeficit emits the deficit weeks at a constant target of
// maintenance − deficit. Expenditure is based on the initial weight and the
// deficit activity level, suppressed each week by the adaptation factor for
// the weeks elapsed so far (0 for the first week). Returns the adaptation
// factor at the end of the phase for the recovery phases to inherit.
func (e Engine) calorieDeficit(in Input, level ActivityLevel, s simState, out FullPlan) (simState, FullPlan, float64) {
	weeks := deficitDuration(in)
	target := in.CurrentMaintenanceCalories - in.DailyDeficitCalories
	baseTDEE := expenditure(basalEnergy(in.WeightKG, in.HeightCM, in.Age, in.Sex), level)

	for w := 0; w < weeks; w++ {
		tdee := baseTDEE * e.Profile.adaptationFactor(float64(w))

		eff := 1 - deficitEfficiencyLossPerWeek*float64(w)
		if eff < minDeficitEfficiency {
			eff = minDeficitEfficiency
		}
		// Efficiency shrinks the divisor, so the weekly loss magnitude is
		// scaled by 1/eff, not eff.
		var rec WeekRecord
		s, rec = emitWeek(s, PhaseCalorieDeficit, target, tdee, kcalPerKG*eff)
		out = append(out, rec)
	}

	return s, out, e.Profile.adaptationFactor(float64(weeks))
}

// postDeficitMaintenance holds the deficit-phase target for two weeks while
// expenditure, recomputed from the weight at phase start, partially recovers
// from the inherited adaptation. Returns the multiplier of the phase's final
// week.
func (e Engine) postDeficitMaintenance(in Input, level ActivityLevel, deficitEndFactor float64, s simState, out FullPlan) (simState, FullPlan, float64) {
	target := in.CurrentMaintenanceCalories - in.DailyDeficitCalories
	baseTDEE := expenditure(basalEnergy(s.weight, in.HeightCM, in.Age, in.Sex), level)

	factor := deficitEndFactor
	for w := 0; w < postDeficitWeeks; w++ {
		factor = e.Profile.postDeficitFactor(deficitEndFactor, w)
		var rec WeekRecord
		s, rec = emitWeek(s, PhasePostDeficitMaintenance, target, baseTDEE*factor, kcalPerKG*postDeficitEfficiency)
		out = append(out, rec)
	}

	return s, out, factor
}

// reverseDiet raises the target by the weekly increase until it reaches the
// final maintenance value, terminating the iteration in which the cap is
// first applied. Zero weeks are emitted when the final target is already at
// or below the post-deficit calories. Surplus weeks store at 0.9
// efficiency; non-positive balances convert at full efficiency.
func (e Engine) reverseDiet(in Input, level ActivityLevel, postEndFactor float64, s simState, out FullPlan) (simState, FullPlan) {
	postDeficitTarget := in.CurrentMaintenanceCalories - in.DailyDeficitCalories
	weeks := int(math.Ceil((in.TargetFinalMaintenanceCalories - postDeficitTarget) / in.WeeklyReverseIncreaseCalories))
	if weeks <= 0 {
		return s, out
	}

	baseTDEE := expenditure(basalEnergy(s.weight, in.HeightCM, in.Age, in.Sex), level)
	target := postDeficitTarget

	for w := 0; w < weeks; w++ {
		target += in.WeeklyReverseIncreaseCalories
		capped := false
		if target >= in.TargetFinalMaintenanceCalories {
			target = in.TargetFinalMaintenanceCalories
			capped = true
		}

		tdee := baseTDEE * reverseFactor(postEndFactor, w+1, weeks)

		divisor := kcalPerKG
		if 7*(target-tdee) > 0 {
			divisor = kcalPerKG / surplusStorageEfficiency
		}

		var rec WeekRecord
		s, rec = emitWeek(s, PhaseReverseDiet, target, tdee, divisor)
		out = append(out, rec)

		if capped {
			break
		}
	}

	return s, out
}

// newMaintenance emits the single terminal week at the final maintenance
// target, expenditure recomputed from the weight at phase start with full
// recovery.
func (e Engine) newMaintenance(in Input, level ActivityLevel, s simState, out FullPlan) (simState, FullPlan) {
	tdee := expenditure(basalEnergy(s.weight, in.HeightCM, in.Age, in.Sex), level)
	s, rec := emitWeek(s, PhaseNewMaintenance, in.TargetFinalMaintenanceCalories, tdee, kcalPerKG)
	return s, append(out, rec)
}

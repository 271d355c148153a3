package plan

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Engine input / output ──────────────────────────────────────────── */

// Input is one fully-collected plan request. Numeric range and
// required-field validation is the HTTP collector's job (gin binding tags);
// the engine assumes a valid value and only parses StartDate itself.
//
// The three per-phase activity levels are optional overrides; a nil pointer
// falls back to InitialActivityLevel.
type Input struct {
	Age                            int            `json:"age" binding:"required,gt=0"`
	WeightKG                       float64        `json:"weight_kg" binding:"required,gt=0"`
	HeightCM                       float64        `json:"height_cm" binding:"required,gt=0"`
	Sex                            string         `json:"sex" binding:"required,oneof=male female"`
	CurrentMaintenanceCalories     float64        `json:"current_maintenance_calories" binding:"required,gt=0"`
	StartDate                      string         `json:"start_date" binding:"required"` // YYYY-MM-DD, parsed by the engine
	InitialActivityLevel           ActivityLevel  `json:"initial_activity_level" binding:"required"`
	DeficitActivityLevel           *ActivityLevel `json:"deficit_activity_level"`
	ReverseActivityLevel           *ActivityLevel `json:"reverse_activity_level"`
	NewMaintenanceActivityLevel    *ActivityLevel `json:"new_maintenance_activity_level"`
	TargetWeightLossKG             float64        `json:"target_weight_loss_kg" binding:"gte=0"`
	DailyDeficitCalories           float64        `json:"daily_deficit_calories" binding:"required,gt=0"`
	TargetFinalMaintenanceCalories float64        `json:"target_final_maintenance_calories" binding:"required,gt=0"`
	WeeklyReverseIncreaseCalories  float64        `json:"weekly_reverse_increase_calories" binding:"required,gt=0"`
}

// Phase identifies which calorie-setting rule a simulated week ran under.
// The engine always traverses all five in this order, never skipping or
// repeating one.
type Phase string

const (
	PhaseInitialMaintenance     Phase = "Initial Maintenance"
	PhaseCalorieDeficit         Phase = "Calorie Deficit"
	PhasePostDeficitMaintenance Phase = "Post-Deficit Maintenance"
	PhaseReverseDiet            Phase = "Reverse Diet"
	PhaseNewMaintenance         Phase = "New Maintenance"
)

// WeekRecord is one simulated week. Calorie figures are rounded to whole
// kcal at emission; weight figures keep full float precision, and all
// weight math upstream runs on the unrounded calorie values.
type WeekRecord struct {
	WeekNumber int      `json:"week_number"`
	StartDate  DateOnly `json:"start_date"`
	EndDate    DateOnly `json:"end_date"` // inclusive; next week starts the following day
	Phase      Phase    `json:"phase"`

	TargetCalories                int  `json:"target_calories"`
	CalorieChangeFromPreviousWeek *int `json:"calorie_change_from_previous_week"` // nil iff week 1
	EstimatedTDEE                 int  `json:"estimated_tdee"`
	EstimatedWeeklyBalance        int  `json:"estimated_weekly_balance"` // 7 × (target − TDEE)

	EstimatedWeeklyWeightChangeKG     float64 `json:"estimated_weekly_weight_change_kg"`
	EstimatedCumulativeWeightChangeKG float64 `json:"estimated_cumulative_weight_change_kg"`
	EstimatedEndWeightKG              float64 `json:"estimated_end_weight_kg"`
}

// FullPlan is the ordered week-by-week projection. Always at least 8 weeks:
// 1 initial maintenance + a deficit clamped to ≥4 + 2 post-deficit + 1 new
// maintenance, with the reverse phase possibly contributing zero.
type FullPlan []WeekRecord

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lg/weight-plan-go-api/plan"
)

const dateLayout = "2006-01-02"

// createPlan generates a projection from the posted inputs and stores it
// under a fresh opaque id. POST /api/plans. Binding tags enforce the numeric
// ranges; activity levels get an explicit check so the caller sees which
// value was wrong rather than a generic validation error. Any generation
// failure returns 400 and nothing is stored.
func (h *Handler) createPlan(c *gin.Context) {
	var in plan.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if bad, ok := firstInvalidActivityLevel(in); !ok {
		apiError(c, http.StatusBadRequest, fmt.Sprintf(
			"unknown activity level %q; must be one of: sedentary, lightly_active, moderately_active, very_active, extra_active", bad))
		return
	}

	generated, err := plan.Generate(in)
	if err != nil {
		if errors.Is(err, plan.ErrBadStartDate) {
			apiError(c, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
			return
		}
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	inputJSON, err := json.Marshal(in)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to encode input")
		return
	}
	planJSON, err := json.Marshal(generated)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to encode plan")
		return
	}

	id := uuid.New()
	stored, err := queryOne[storedPlan](h.db, c,
		`INSERT INTO plans (id, start_date, input, plan)
		 VALUES (@id, @startDate, @input, @plan)
		 RETURNING *`,
		pgx.NamedArgs{
			"id":        id,
			"startDate": in.StartDate,
			"input":     inputJSON,
			"plan":      planJSON,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to store plan")
		return
	}

	log.Printf("[createPlan] stored plan %s (%d weeks)", id, len(generated))
	c.JSON(http.StatusCreated, planResponse{
		ID:                stored.ID,
		Plan:              generated,
		CurrentWeekNumber: currentWeekNumber(generated, time.Now()),
		CreatedAt:         stored.CreatedAt,
	})
}

// getPlan fetches a stored plan by id. GET /api/plans/:id?today=YYYY-MM-DD.
// today defaults to the server date and drives current-week highlighting.
// 404 means "plan not found"; a failed generation never creates an id, so
// callers can tell the two apart.
func (h *Handler) getPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid plan id")
		return
	}

	today := c.DefaultQuery("today", time.Now().Format(dateLayout))
	todayDate, err := time.Parse(dateLayout, today)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid today, expected YYYY-MM-DD")
		return
	}

	stored, err := queryOne[storedPlan](h.db, c,
		"SELECT * FROM plans WHERE id = @id",
		pgx.NamedArgs{"id": id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "plan not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch plan")
		}
		return
	}

	var weeks plan.FullPlan
	if err := json.Unmarshal(stored.Plan, &weeks); err != nil {
		log.Printf("[getPlan] corrupt plan blob %s: %v", id, err)
		apiError(c, http.StatusInternalServerError, "failed to decode plan")
		return
	}

	c.JSON(http.StatusOK, planResponse{
		ID:                stored.ID,
		Plan:              weeks,
		CurrentWeekNumber: currentWeekNumber(weeks, todayDate),
		CreatedAt:         stored.CreatedAt,
	})
}

// listPlans returns summaries of all stored plans, newest first.
// GET /api/plans. Returns an empty array (not null) when none exist.
func (h *Handler) listPlans(c *gin.Context) {
	summaries, err := queryMany[planSummary](h.db, c,
		`SELECT id, start_date, jsonb_array_length(plan) AS weeks, created_at
		 FROM plans
		 ORDER BY created_at DESC`,
		pgx.NamedArgs{})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to list plans")
		return
	}
	if summaries == nil {
		summaries = []planSummary{}
	}

	c.JSON(http.StatusOK, summaries)
}

// deletePlan removes a stored plan by id. DELETE /api/plans/:id.
// Returns 204 on success, 404 if not found.
func (h *Handler) deletePlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid plan id")
		return
	}

	result, err := h.db.Exec(c, "DELETE FROM plans WHERE id = @id", pgx.NamedArgs{"id": id})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete plan")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "plan not found")
		return
	}

	c.Status(http.StatusNoContent)
}

/* ─── Helpers ─────────────────────────────────────────────────────────── */

// firstInvalidActivityLevel checks the initial level and every non-nil
// override against the enum, returning the first unknown value.
func firstInvalidActivityLevel(in plan.Input) (plan.ActivityLevel, bool) {
	levels := []*plan.ActivityLevel{
		&in.InitialActivityLevel,
		in.DeficitActivityLevel,
		in.ReverseActivityLevel,
		in.NewMaintenanceActivityLevel,
	}
	for _, l := range levels {
		if l == nil {
			continue
		}
		if _, ok := plan.ParseActivityLevel(string(*l)); !ok {
			return *l, false
		}
	}
	return "", true
}

// currentWeekNumber returns the number of the week whose inclusive
// [start, end] window contains today, or nil when today is outside the
// plan's range. Time-of-day is ignored; only the calendar date matters.
func currentWeekNumber(weeks plan.FullPlan, today time.Time) *int {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for _, w := range weeks {
		if !day.Before(w.StartDate.Time) && !day.After(w.EndDate.Time) {
			n := w.WeekNumber
			return &n
		}
	}
	return nil
}

package main

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"lg/weight-plan-go-api/plan"
)

/* ─── Storage structs ─────────────────────────────────────────────────── */

// storedPlan maps to the plans table. Input and plan are opaque JSONB blobs:
// the store is write-once/read-many and never inspects them beyond the
// denormalized start_date used for listing.
type storedPlan struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	StartDate plan.DateOnly   `json:"start_date" db:"start_date"`
	Input     json.RawMessage `json:"input" db:"input"`
	Plan      json.RawMessage `json:"plan" db:"plan"`
	CreatedAt *time.Time      `json:"created_at" db:"created_at"`
}

// planSummary is one row of the GET /api/plans listing. Weeks is computed
// by the query (jsonb_array_length) so the blob never leaves the database.
type planSummary struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	StartDate plan.DateOnly `json:"start_date" db:"start_date"`
	Weeks     int           `json:"weeks" db:"weeks"`
	CreatedAt *time.Time    `json:"created_at" db:"created_at"`
}

/* ─── Response shapes ─────────────────────────────────────────────────── */

// planResponse is the body for POST /api/plans and GET /api/plans/:id.
// CurrentWeekNumber is derived from the caller-supplied (or server) "today"
// and is nil when today falls outside the plan's date range.
type planResponse struct {
	ID                uuid.UUID     `json:"id"`
	Plan              plan.FullPlan `json:"plan"`
	CurrentWeekNumber *int          `json:"current_week_number"`
	CreatedAt         *time.Time    `json:"created_at"`
}

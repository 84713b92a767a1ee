package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// Input sources of an analysis run.
const (
	SourceCSV  = "csv"
	SourceXLSX = "xlsx"
	SourceJSON = "json"
)

// AnalysisRun records one dataset analysis. Reports themselves are never
// persisted; only what was analyzed and how it went.
type AnalysisRun struct {
	ID               uuid.UUID `db:"id"                json:"id"`
	Source           string    `db:"source"            json:"source"`
	Backend          string    `db:"backend"           json:"backend"`
	Fingerprint      string    `db:"fingerprint"       json:"fingerprint"`
	Rows             int       `db:"row_count"         json:"rows"`
	Columns          int       `db:"column_count"      json:"columns"`
	TextColumn       *string   `db:"text_column"       json:"text_column,omitempty"`
	PredictiveStatus *string   `db:"predictive_status" json:"predictive_status,omitempty"`
	Status           string    `db:"status"            json:"status"`
	ErrorMessage     *string   `db:"error_message"     json:"error_message,omitempty"`
	CacheHit         bool      `db:"cache_hit"         json:"cache_hit"`
	DurationMS       int64     `db:"duration_ms"       json:"duration_ms"`
	CreatedAt        time.Time `db:"created_at"        json:"created_at"`
}

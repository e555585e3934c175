package exerciselog

import (
	"time"

	"github.com/google/uuid"
)

// Entry sources.
const (
	SourceManual    = "manual"
	SourceHealthKit = "health_kit"
	SourceGoogleFit = "google_fit"
	SourceGarmin    = "garmin"
)

// Entry is one logged exercise session.
type Entry struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"` // running, cycling, strength, ...
	Name           string    `json:"name"`
	DurationMin    int       `json:"duration_min"`
	CaloriesBurned float64   `json:"calories_burned"`
	DistanceKm     *float64  `json:"distance_km,omitempty"`
	Source         string    `json:"source"`
	LoggedAt       time.Time `json:"logged_at"`
}

// EntryUpdate is a partial update; nil fields stay unchanged.
type EntryUpdate struct {
	Name           *string  `json:"name,omitempty"`
	DurationMin    *int     `json:"duration_min,omitempty"`
	CaloriesBurned *float64 `json:"calories_burned,omitempty"`
	DistanceKm     *float64 `json:"distance_km,omitempty"`
}

// State is the snapshot form of the exercise collection.
type State struct {
	Entries []Entry `json:"exercise_logs"`
}

// DaySummary — ответ для GET /v1/exercise-logs/summary
type DaySummary struct {
	Date           string  `json:"date"`
	CaloriesBurned float64 `json:"calories_burned"`
	DurationMin    int     `json:"duration_min"`
	Entries        int     `json:"entries"`
}

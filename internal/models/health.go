package models

import (
	"time"

	"github.com/google/uuid"
)

// HealthSummary is the aggregate written once to the platform health store
// when a session is finalized.
type HealthSummary struct {
	SessionID uuid.UUID `json:"sessionId"`
	UserID    uuid.UUID `json:"userId"`

	Steps          int     `json:"steps"`
	DistanceMeters float64 `json:"distanceMeters"`
	Calories       float64 `json:"calories"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// HealthAggregates holds historical aggregates read back from the health
// store over a date range. AverageHeartRate and FallEvents come only from
// platform-backed stores; the in-memory stand-in leaves them zero.
type HealthAggregates struct {
	Steps            int     `json:"steps"`
	DistanceMeters   float64 `json:"distanceMeters"`
	Calories         float64 `json:"calories"`
	AverageHeartRate float64 `json:"averageHeartRate"`
	FallEvents       int     `json:"fallEvents"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// RehabilitationProgress holds longitudinal statistics over a patient's full
// session history. It is recomputed from scratch after every session end,
// not incrementally maintained.
type RehabilitationProgress struct {
	UserID uuid.UUID `json:"userId" db:"user_id"`

	TotalSessions int `json:"totalSessions" db:"total_sessions"`

	// Mean stability score across all balance metrics of all sessions
	AverageStabilityScore float64 `json:"averageStabilityScore" db:"avg_stability_score"`

	// Mean gait symmetry (scaled to 0-100) across all gait metrics
	AverageGaitScore float64 `json:"averageGaitScore" db:"avg_gait_score"`

	// Per-session mean fall risk index for the most recent 10 sessions,
	// in chronological order
	FallRiskTrend []float64 `json:"fallRiskTrend"`

	// Percentage change of recent vs older overall-score averages
	ImprovementRate float64 `json:"improvementRate" db:"improvement_rate"`

	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

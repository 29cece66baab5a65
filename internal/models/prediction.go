package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel is a coarse fall-risk category assigned by the recommendation
// engine
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// MLPrediction represents the recommendation generated at session start. It
// is tagged with the session it was issued for so that late-arriving results
// for an ended session can be discarded as stale.
type MLPrediction struct {
	ID uuid.UUID `json:"id" db:"id"`

	// Session the prediction was generated for
	SessionID uuid.UUID `json:"sessionId" db:"session_id"`

	UserID uuid.UUID `json:"userId" db:"user_id"`

	PredictedDifficulty Difficulty   `json:"predictedDifficulty" db:"predicted_difficulty"`
	RecommendedExercise ExerciseType `json:"recommendedExercise" db:"recommended_exercise"`

	// Clamped to [0.3, 0.95]
	Confidence float64 `json:"confidence" db:"confidence"`

	RiskAssessment RiskLevel `json:"riskAssessment" db:"risk_assessment"`

	// Advisory text chosen from a fixed lookup table
	NextSessionRecommendation string `json:"nextSessionRecommendation" db:"next_session_recommendation"`

	GeneratedAt time.Time `json:"generatedAt" db:"generated_at"`
}

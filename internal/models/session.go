package models

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseType identifies the kind of rehabilitation exercise for a session
type ExerciseType string

const (
	// ExerciseSeatedBalance is the most conservative exercise, recommended
	// when fall risk is elevated
	ExerciseSeatedBalance ExerciseType = "seated_balance"

	// ExerciseStandingBalance is a balance-focused exercise
	ExerciseStandingBalance ExerciseType = "standing_balance"

	// ExerciseGaitTraining is a gait-focused walking exercise
	ExerciseGaitTraining ExerciseType = "gait_training"

	// ExerciseDualTask combines balance and cognitive load
	ExerciseDualTask ExerciseType = "dual_task"

	// ExerciseObstacleWalk is the most challenging exercise
	ExerciseObstacleWalk ExerciseType = "obstacle_walk"
)

// ExerciseTypes lists all valid exercise types
var ExerciseTypes = []ExerciseType{
	ExerciseSeatedBalance,
	ExerciseStandingBalance,
	ExerciseGaitTraining,
	ExerciseDualTask,
	ExerciseObstacleWalk,
}

// IsValid reports whether the exercise type is one of the known variants
func (e ExerciseType) IsValid() bool {
	for _, t := range ExerciseTypes {
		if e == t {
			return true
		}
	}
	return false
}

// Difficulty is an ordered exercise difficulty tier
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// difficultyOrder fixes the total ordering of tiers, lowest first
var difficultyOrder = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
	DifficultyExpert,
}

// IsValid reports whether the difficulty is one of the known tiers
func (d Difficulty) IsValid() bool {
	for _, t := range difficultyOrder {
		if d == t {
			return true
		}
	}
	return false
}

// StepUp returns the next harder tier, saturating at the top
func (d Difficulty) StepUp() Difficulty {
	for i, t := range difficultyOrder {
		if d == t && i < len(difficultyOrder)-1 {
			return difficultyOrder[i+1]
		}
	}
	return d
}

// StepDown returns the next easier tier, saturating at the bottom
func (d Difficulty) StepDown() Difficulty {
	for i, t := range difficultyOrder {
		if d == t && i > 0 {
			return difficultyOrder[i-1]
		}
	}
	return d
}

// ExerciseSession represents one rehabilitation session. It is created empty
// at session start, mutated in place by the session accumulator as samples
// are processed, and finalized (EndTime, DurationSeconds, OverallScore) at
// session end. A finalized session is immutable.
type ExerciseSession struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	UserID       uuid.UUID    `json:"userId" db:"user_id"`
	ExerciseType ExerciseType `json:"exerciseType" db:"exercise_type"`
	Difficulty   Difficulty   `json:"difficulty" db:"difficulty"`

	StartTime time.Time  `json:"startTime" db:"started_at"`
	EndTime   *time.Time `json:"endTime,omitempty" db:"ended_at"` // nil while active

	// Metric sequences grow unbounded for the session duration; only the
	// raw ingest window is capped.
	BalanceMetrics []BalanceMetrics `json:"balanceMetrics"`
	GaitMetrics    []GaitMetrics    `json:"gaitMetrics"`
	VRTracking     []VRTrackingData `json:"vrTracking"`

	// Derived at session end
	DurationSeconds float64 `json:"durationSeconds" db:"duration_seconds"`
	OverallScore    float64 `json:"overallScore" db:"overall_score"`
}

// IsActive reports whether the session has not been finalized yet
func (s *ExerciseSession) IsActive() bool {
	return s.EndTime == nil
}

// MeanFallRisk returns the session's mean fall risk index, 0 if no balance
// metrics were recorded
func (s *ExerciseSession) MeanFallRisk() float64 {
	if len(s.BalanceMetrics) == 0 {
		return 0
	}
	var sum float64
	for _, b := range s.BalanceMetrics {
		sum += b.FallRiskIndex
	}
	return sum / float64(len(s.BalanceMetrics))
}

// SessionSummary represents a finalized session for API responses, without
// the full metric sequences
type SessionSummary struct {
	ID              uuid.UUID    `json:"id"`
	UserID          uuid.UUID    `json:"userId"`
	ExerciseType    ExerciseType `json:"exerciseType"`
	Difficulty      Difficulty   `json:"difficulty"`
	StartTime       time.Time    `json:"startTime"`
	EndTime         *time.Time   `json:"endTime,omitempty"`
	DurationSeconds float64      `json:"durationSeconds"`
	OverallScore    float64      `json:"overallScore"`
	BalanceSamples  int          `json:"balanceSamples"`
	GaitSamples     int          `json:"gaitSamples"`
}

// ToSummary converts a session to its summary form
func (s *ExerciseSession) ToSummary() *SessionSummary {
	return &SessionSummary{
		ID:              s.ID,
		UserID:          s.UserID,
		ExerciseType:    s.ExerciseType,
		Difficulty:      s.Difficulty,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationSeconds: s.DurationSeconds,
		OverallScore:    s.OverallScore,
		BalanceSamples:  len(s.BalanceMetrics),
		GaitSamples:     len(s.GaitMetrics),
	}
}

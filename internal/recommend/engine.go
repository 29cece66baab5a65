// Package recommend implements the heuristic recommendation engine: a fixed
// rule table over normalized balance, gait and history features.
package recommend

import (
	"time"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

// Fixed divisors bringing each raw feature to roughly [0,1]
const (
	stabilityDivisor    = 100.0
	fallRiskDivisor     = 100.0
	swayAreaDivisor     = 100.0
	swayVelocityDivisor = 10.0
	speedDivisor        = 2.0
	cadenceDivisor      = 120.0
	stepLengthDivisor   = 1.0
	historyDivisor      = 100.0
	experienceSessions  = 50.0
)

// Confidence is clamped to this range regardless of feature spread
const (
	minConfidence = 0.3
	maxConfidence = 0.95
)

// Risk thresholds on the combined risk level
const (
	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.4
)

// historyWindow is how many recent sessions contribute to the history score
const historyWindow = 5

// features is the normalized input block for the rule table. Missing
// optional metrics leave their block zero-filled rather than failing.
type features struct {
	stability    float64
	fallRisk     float64
	swayArea     float64
	swayVelocity float64

	symmetry   float64
	speed      float64
	cadence    float64
	stepLength float64

	historyAvg float64
	experience float64
}

// vector flattens the features for variance/coverage computation
func (f features) vector() []float64 {
	return []float64{
		f.stability, f.fallRisk, f.swayArea, f.swayVelocity,
		f.symmetry, f.speed, f.cadence, f.stepLength,
		f.historyAvg, f.experience,
	}
}

// Engine generates exercise and difficulty recommendations
type Engine struct{}

// NewEngine creates a recommendation engine
func NewEngine() *Engine {
	return &Engine{}
}

// Recommend maps current metrics and recent session history to a prediction.
// Either metrics argument may be nil.
func (e *Engine) Recommend(userID, sessionID uuid.UUID, balance *models.BalanceMetrics, gait *models.GaitMetrics, history []*models.ExerciseSession) *models.MLPrediction {
	f := extractFeatures(balance, gait, history)

	exercise := recommendExercise(f)
	difficulty := recommendDifficulty(f)
	risk := assessRisk(f)

	return &models.MLPrediction{
		ID:                        uuid.New(),
		SessionID:                 sessionID,
		UserID:                    userID,
		PredictedDifficulty:       difficulty,
		RecommendedExercise:       exercise,
		Confidence:                confidence(f),
		RiskAssessment:            risk,
		NextSessionRecommendation: advisory(exercise, difficulty, risk),
		GeneratedAt:               time.Now().UTC(),
	}
}

// AdjustDifficulty steps the difficulty tier based on last performance
// (0-1) and risk level (0-1). Tiers saturate at both ends.
func AdjustDifficulty(current models.Difficulty, performance, riskLevel float64) models.Difficulty {
	if performance > 0.7 && riskLevel < 0.6 {
		return current.StepUp()
	}
	if performance < 0.7 || riskLevel > 0.6 {
		return current.StepDown()
	}
	return current
}

func extractFeatures(balance *models.BalanceMetrics, gait *models.GaitMetrics, history []*models.ExerciseSession) features {
	var f features

	if balance != nil {
		f.stability = balance.StabilityScore / stabilityDivisor
		f.fallRisk = balance.FallRiskIndex / fallRiskDivisor
		f.swayArea = balance.SwayArea / swayAreaDivisor
		f.swayVelocity = balance.SwayVelocity / swayVelocityDivisor
	}

	if gait != nil {
		f.symmetry = gait.GaitSymmetry
		f.speed = gait.WalkingSpeed / speedDivisor
		f.cadence = gait.Cadence / cadenceDivisor
		f.stepLength = gait.StepLength / stepLengthDivisor
	}

	if n := len(history); n > 0 {
		recent := history
		if n > historyWindow {
			recent = history[n-historyWindow:]
		}
		var sum float64
		for _, s := range recent {
			sum += s.OverallScore
		}
		f.historyAvg = sum / float64(len(recent)) / historyDivisor

		f.experience = float64(n) / experienceSessions
		if f.experience > 1 {
			f.experience = 1
		}
	}

	return f
}

// recommendExercise applies the ordered rule table; the first matching rule
// wins.
func recommendExercise(f features) models.ExerciseType {
	switch {
	case f.fallRisk > 0.7:
		return models.ExerciseSeatedBalance
	case f.stability < 0.6:
		return models.ExerciseStandingBalance
	case f.symmetry < 0.8:
		return models.ExerciseGaitTraining
	case f.stability > 0.8:
		return models.ExerciseObstacleWalk
	default:
		return models.ExerciseDualTask
	}
}

// recommendDifficulty maps the composite readiness score to a tier
func recommendDifficulty(f features) models.Difficulty {
	composite := (f.stability + (1 - f.fallRisk) + f.historyAvg) / 3
	switch {
	case composite >= 0.8:
		return models.DifficultyExpert
	case composite >= 0.6:
		return models.DifficultyAdvanced
	case composite >= 0.4:
		return models.DifficultyIntermediate
	default:
		return models.DifficultyBeginner
	}
}

// assessRisk combines fall risk and instability into a risk category
func assessRisk(f features) models.RiskLevel {
	level := (f.fallRisk + (1 - f.stability)) / 2
	switch {
	case level > highRiskThreshold:
		return models.RiskHigh
	case level > mediumRiskThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// confidence scales inversely with feature spread and directly with feature
// coverage, clamped to [minConfidence, maxConfidence]
func confidence(f features) float64 {
	vec := f.vector()

	var mean float64
	for _, v := range vec {
		mean += v
	}
	mean /= float64(len(vec))

	var variance float64
	nonZero := 0
	for _, v := range vec {
		variance += (v - mean) * (v - mean)
		if v != 0 {
			nonZero++
		}
	}
	variance /= float64(len(vec))

	coverage := float64(nonZero) / float64(len(vec))
	c := (1 - variance) * coverage

	if c < minConfidence {
		return minConfidence
	}
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}

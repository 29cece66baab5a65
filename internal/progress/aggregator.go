// Package progress reduces full session history into longitudinal
// rehabilitation statistics.
package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

const (
	// trendWindow is how many recent sessions appear in the fall-risk trend
	trendWindow = 10

	// rateWindow is how many sessions each improvement-rate average spans.
	// Short histories shrink the window to half the history (rounded up),
	// so the recent and older windows may still overlap below 2*rateWindow
	// sessions; that overlap is intentional smoothing and is preserved.
	rateWindow = 5
)

// Aggregate recomputes a patient's progress from their full session history,
// in chronological order. It is a full recompute, not incremental.
func Aggregate(userID uuid.UUID, history []*models.ExerciseSession) *models.RehabilitationProgress {
	p := &models.RehabilitationProgress{
		UserID:        userID,
		TotalSessions: len(history),
		FallRiskTrend: []float64{},
		UpdatedAt:     time.Now().UTC(),
	}

	var stabilitySum float64
	var stabilityCount int
	var symmetrySum float64
	var symmetryCount int

	for _, s := range history {
		for _, b := range s.BalanceMetrics {
			stabilitySum += b.StabilityScore
			stabilityCount++
		}
		for _, g := range s.GaitMetrics {
			symmetrySum += g.GaitSymmetry * 100
			symmetryCount++
		}
	}

	if stabilityCount > 0 {
		p.AverageStabilityScore = stabilitySum / float64(stabilityCount)
	}
	if symmetryCount > 0 {
		p.AverageGaitScore = symmetrySum / float64(symmetryCount)
	}

	trendStart := 0
	if len(history) > trendWindow {
		trendStart = len(history) - trendWindow
	}
	for _, s := range history[trendStart:] {
		p.FallRiskTrend = append(p.FallRiskTrend, s.MeanFallRisk())
	}

	p.ImprovementRate = improvementRate(history)

	return p
}

// improvementRate compares the mean overall score of the most recent
// sessions against the earliest ones, as a percentage change. It requires at
// least two sessions and yields 0 when the older average is 0.
func improvementRate(history []*models.ExerciseSession) float64 {
	if len(history) < 2 {
		return 0
	}

	window := rateWindow
	if half := (len(history) + 1) / 2; half < window {
		window = half
	}

	recentAvg := meanScore(history[len(history)-window:])
	olderAvg := meanScore(history[:window])

	if olderAvg == 0 {
		return 0
	}
	return (recentAvg - olderAvg) / olderAvg * 100
}

func meanScore(sessions []*models.ExerciseSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sessions {
		sum += s.OverallScore
	}
	return sum / float64(len(sessions))
}

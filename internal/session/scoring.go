package session

import (
	"github.com/sebasr/rehab-service/internal/models"
)

// Score reduces a session's accumulated metric sequences to an overall score
// in [0,100]. An empty sequence contributes 0 rather than dividing by zero.
func Score(s *models.ExerciseSession) float64 {
	var balanceScore float64
	if n := len(s.BalanceMetrics); n > 0 {
		var sum float64
		for _, b := range s.BalanceMetrics {
			sum += b.StabilityScore
		}
		balanceScore = sum / float64(n)
	}

	var gaitScore float64
	if n := len(s.GaitMetrics); n > 0 {
		var sum float64
		for _, g := range s.GaitMetrics {
			sum += g.GaitSymmetry * 100
		}
		gaitScore = sum / float64(n)
	}

	return (balanceScore + gaitScore) / 2
}

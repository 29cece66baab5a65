package session

import (
	"math"
	"testing"

	"github.com/sebasr/rehab-service/internal/models"
)

func sessionWith(stabilities []float64, symmetries []float64) *models.ExerciseSession {
	s := &models.ExerciseSession{}
	for _, v := range stabilities {
		s.BalanceMetrics = append(s.BalanceMetrics, models.BalanceMetrics{StabilityScore: v})
	}
	for _, v := range symmetries {
		s.GaitMetrics = append(s.GaitMetrics, models.GaitMetrics{GaitSymmetry: v})
	}
	return s
}

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		stabilities []float64
		symmetries  []float64
		expected    float64
	}{
		{
			name:        "no metrics at all",
			stabilities: nil,
			symmetries:  nil,
			expected:    0,
		},
		{
			name:        "balance only, missing gait contributes zero",
			stabilities: []float64{80, 60},
			symmetries:  nil,
			expected:    35, // (70 + 0) / 2
		},
		{
			name:        "gait only, missing balance contributes zero",
			stabilities: nil,
			symmetries:  []float64{0.9, 0.7},
			expected:    40, // (0 + 80) / 2
		},
		{
			name:        "both sequences",
			stabilities: []float64{90, 70},
			symmetries:  []float64{0.8, 1.0},
			expected:    85, // (80 + 90) / 2
		},
		{
			name:        "perfect session",
			stabilities: []float64{100},
			symmetries:  []float64{1.0},
			expected:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(sessionWith(tt.stabilities, tt.symmetries))
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Score = %v, want %v", got, tt.expected)
			}
		})
	}
}

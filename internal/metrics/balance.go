// Package metrics derives balance, gait and VR tracking metrics from raw
// device-motion samples.
package metrics

import (
	"github.com/sebasr/rehab-service/internal/models"
)

// ComputeBalance maps one motion sample to balance metrics. It is a pure
// function and always succeeds: every floating-point triple is a valid
// input.
//
// StabilityScore and FallRiskIndex are clamped to [0,100] independently;
// there is no cross-field invariant between them.
func ComputeBalance(s models.MotionSample) models.BalanceMetrics {
	swayArea := s.Gravity.HorizontalMagnitude() * 100
	swayVelocity := s.UserAcceleration.HorizontalMagnitude()

	stability := 100 - swayArea*10
	if stability < 0 {
		stability = 0
	}

	fallRisk := swayArea*20 + swayVelocity*50
	if fallRisk > 100 {
		fallRisk = 100
	}

	return models.BalanceMetrics{
		Timestamp: s.Timestamp,
		CenterOfPressure: models.Point2D{
			X: s.Gravity.X * 100,
			Y: s.Gravity.Y * 100,
		},
		SwayArea:       swayArea,
		SwayVelocity:   swayVelocity,
		StabilityScore: stability,
		FallRiskIndex:  fallRisk,
	}
}

package metrics

import (
	"github.com/sebasr/rehab-service/internal/models"
)

// Scaling constants for the simulated VR trackers. The foot tracker tracks
// orientation more aggressively than the torso tracker.
const (
	footPositionScale  = 50.0
	torsoPositionScale = 30.0
	footVelocityScale  = 1.0
	torsoVelocityScale = 0.5
)

// DeriveVRTracking maps one motion sample to the simulated VR tracker feed.
// It uses the same sample as the balance calculator, with different scaling
// for the foot and torso trackers.
func DeriveVRTracking(s models.MotionSample) models.VRTrackingData {
	return models.VRTrackingData{
		Timestamp: s.Timestamp,
		FootPosition: models.Point2D{
			X: s.Gravity.X * footPositionScale,
			Y: s.Gravity.Y * footPositionScale,
		},
		TorsoPosition: models.Point2D{
			X: s.Gravity.X * torsoPositionScale,
			Y: s.Gravity.Y * torsoPositionScale,
		},
		FootVelocity: models.Point2D{
			X: s.UserAcceleration.X * footVelocityScale,
			Y: s.UserAcceleration.Y * footVelocityScale,
		},
		TorsoVelocity: models.Point2D{
			X: s.UserAcceleration.X * torsoVelocityScale,
			Y: s.UserAcceleration.Y * torsoVelocityScale,
		},
		BalanceOffset: s.Gravity.HorizontalMagnitude(),
	}
}

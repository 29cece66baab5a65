package models

import "time"

// BalanceMetrics represents postural balance indicators derived from a single
// motion sample
type BalanceMetrics struct {
	Timestamp time.Time `json:"timestamp" db:"recorded_at"`

	// Center of pressure estimate in centimeters, from the gravity vector
	CenterOfPressure Point2D `json:"centerOfPressure"`

	// Postural sway area proxy, >= 0
	SwayArea float64 `json:"swayArea"`

	// Postural sway velocity proxy, >= 0
	SwayVelocity float64 `json:"swayVelocity"`

	// Balance quality indicator, 0-100, higher is better
	StabilityScore float64 `json:"stabilityScore"`

	// Fall probability indicator, 0-100, higher is worse
	FallRiskIndex float64 `json:"fallRiskIndex"`
}

// GaitMetrics represents per-step gait indicators. Produced only when the
// walking-detection gate fires for a sample. Cadence, StrideLength and
// WalkingSpeed are derived fields: cadence = 60/stepTime, strideLength =
// 2*stepLength, walkingSpeed = stepLength/stepTime.
type GaitMetrics struct {
	Timestamp time.Time `json:"timestamp" db:"recorded_at"`

	// Step length in meters
	StepLength float64 `json:"stepLength"`

	// Step time in seconds
	StepTime float64 `json:"stepTime"`

	// Steps per minute, = 60/StepTime
	Cadence float64 `json:"cadence"`

	// Left/right step balance proxy, 0-1
	GaitSymmetry float64 `json:"gaitSymmetry"`

	// Stride length in meters, = 2*StepLength
	StrideLength float64 `json:"strideLength"`

	// Walking speed in m/s, = StepLength/StepTime
	WalkingSpeed float64 `json:"walkingSpeed"`
}

// VRTrackingData represents the simulated VR tracker feed derived from the
// same motion sample as the balance metrics, with different scaling for the
// foot and torso trackers.
type VRTrackingData struct {
	Timestamp time.Time `json:"timestamp" db:"recorded_at"`

	FootPosition  Point2D `json:"footPosition"`
	TorsoPosition Point2D `json:"torsoPosition"`
	FootVelocity  Point2D `json:"footVelocity"`
	TorsoVelocity Point2D `json:"torsoVelocity"`

	// Magnitude of the gravity vector's horizontal components, >= 0
	BalanceOffset float64 `json:"balanceOffset"`
}

// Package models contains data models for the rehabilitation service.
package models

import (
	"math"
	"time"
)

// Vector3 represents a 3-axis sensor reading
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Magnitude returns the euclidean norm of the vector
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// HorizontalMagnitude returns the norm of the x/y components only
func (v Vector3) HorizontalMagnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Point2D represents a 2D point or vector (positions, velocities)
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MotionSample represents one device-motion reading from the phone's sensors.
// Samples arrive at a fixed cadence (100ms) while a session is active and are
// discarded after metric derivation; the pipeline keeps only a bounded recent
// window of raw samples.
type MotionSample struct {
	// Gravity/orientation vector in device coordinates
	Gravity Vector3 `json:"gravity"`

	// User-generated acceleration with gravity removed
	UserAcceleration Vector3 `json:"userAcceleration"`

	// When the sample was taken
	Timestamp time.Time `json:"timestamp"`
}

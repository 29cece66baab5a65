// Package motion provides the device-motion and VR tracker data sources
// consumed by the session pipeline. Real devices feed the pipeline over the
// HTTP ingest endpoints; the simulated implementations here stand in for the
// phone's sensors during development and testing.
package motion

import (
	"context"
	"errors"

	"github.com/sebasr/rehab-service/internal/models"
)

var (
	// ErrUnavailable is returned when a sensor source cannot start.
	// Callers surface this as an advisory; tracking simply does not begin.
	ErrUnavailable = errors.New("sensor source unavailable")

	// ErrCalibrationFailed is returned when the tracker drops out before a
	// calibration run completes
	ErrCalibrationFailed = errors.New("calibration failed")
)

// Source produces a live sequence of motion samples at a fixed cadence
type Source interface {
	// Start begins streaming samples. Returns ErrUnavailable when the
	// underlying sensor cannot be reached.
	Start(ctx context.Context) error

	// Stop ends streaming. Safe to call when not streaming.
	Stop()

	// Available reports whether the sensor can currently be started
	Available() bool

	// Samples returns the stream of produced samples. The channel is
	// shared across start/stop cycles.
	Samples() <-chan models.MotionSample
}

// VRLink controls the simulated VR tracker device. Its position/velocity
// feed is derived sample-by-sample from the motion stream; the link itself
// only carries start/stop/calibrate controls.
type VRLink interface {
	Start(ctx context.Context) error
	Stop()
	Available() bool

	// Calibrate runs an asynchronous tracker calibration, honoring
	// context cancellation
	Calibrate(ctx context.Context) error
}

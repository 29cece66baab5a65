package motion

import (
	"context"
	"sync"
	"time"
)

// SimulatedVRLink stands in for the VR tracker device link. Calibration is
// modeled as a short asynchronous operation that can fail or be canceled.
type SimulatedVRLink struct {
	calibrationTime time.Duration

	mu         sync.Mutex
	available  bool
	running    bool
	calibrated bool
}

// NewSimulatedVRLink creates a simulated VR link whose calibration takes the
// given duration
func NewSimulatedVRLink(calibrationTime time.Duration) *SimulatedVRLink {
	return &SimulatedVRLink{
		calibrationTime: calibrationTime,
		available:       true,
	}
}

// SetAvailable toggles simulated device availability
func (l *SimulatedVRLink) SetAvailable(available bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.available = available
}

// Available implements VRLink.Available
func (l *SimulatedVRLink) Available() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.available
}

// Calibrated reports whether the last calibration completed successfully
func (l *SimulatedVRLink) Calibrated() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calibrated
}

// Start implements VRLink.Start
func (l *SimulatedVRLink) Start(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.available {
		return ErrUnavailable
	}
	l.running = true
	return nil
}

// Stop implements VRLink.Stop
func (l *SimulatedVRLink) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = false
}

// Calibrate implements VRLink.Calibrate. It blocks for the configured
// calibration time, honoring context cancellation. A tracker that drops out
// mid-run fails the calibration with ErrCalibrationFailed.
func (l *SimulatedVRLink) Calibrate(ctx context.Context) error {
	l.mu.Lock()
	if !l.available {
		l.mu.Unlock()
		return ErrUnavailable
	}
	l.mu.Unlock()

	timer := time.NewTimer(l.calibrationTime)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.available {
		return ErrCalibrationFailed
	}
	l.calibrated = true
	return nil
}

package motion

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestVRLinkCalibrate(t *testing.T) {
	link := NewSimulatedVRLink(10 * time.Millisecond)

	if link.Calibrated() {
		t.Error("Link should not start calibrated")
	}

	if err := link.Calibrate(context.Background()); err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}
	if !link.Calibrated() {
		t.Error("Link should report calibrated after a successful run")
	}
}

func TestVRLinkCalibrateCanceled(t *testing.T) {
	link := NewSimulatedVRLink(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := link.Calibrate(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context deadline error, got %v", err)
	}
	if link.Calibrated() {
		t.Error("A canceled calibration must not mark the link calibrated")
	}
}

func TestVRLinkCalibrateFailsWhenTrackerDropsOut(t *testing.T) {
	link := NewSimulatedVRLink(100 * time.Millisecond)

	go func() {
		time.Sleep(10 * time.Millisecond)
		link.SetAvailable(false)
	}()

	if err := link.Calibrate(context.Background()); !errors.Is(err, ErrCalibrationFailed) {
		t.Errorf("Expected ErrCalibrationFailed, got %v", err)
	}
	if link.Calibrated() {
		t.Error("A failed calibration must not mark the link calibrated")
	}
}

func TestVRLinkUnavailable(t *testing.T) {
	link := NewSimulatedVRLink(time.Millisecond)
	link.SetAvailable(false)

	if err := link.Start(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable from Start, got %v", err)
	}
	if err := link.Calibrate(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable from Calibrate, got %v", err)
	}
}

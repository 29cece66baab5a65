package metrics

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sebasr/rehab-service/internal/models"
)

// WalkingThreshold is the 3-axis acceleration magnitude above which a sample
// is considered a walking sample. The comparison is strictly greater-than: a
// sample at exactly the threshold does not produce gait metrics.
const WalkingThreshold = 0.1

// Placeholder ranges for the gait estimate. Step length, step time and
// symmetry are drawn from these bounds rather than derived from the motion
// signal; see the GaitEstimator doc comment.
const (
	minStepLength = 0.5
	maxStepLength = 0.8
	minStepTime   = 0.8
	maxStepTime   = 1.2
	minSymmetry   = 0.7
	maxSymmetry   = 1.0
)

// GaitEstimator produces gait metrics for walking samples.
//
// This is a bounded-random placeholder, not a real gait algorithm: step
// length, step time and symmetry are drawn uniformly from fixed ranges
// instead of being estimated from the acceleration signal. The derived
// fields (cadence, stride length, walking speed) are exact functions of the
// drawn values. Replacing the draw with a real estimator is a deliberate
// behavior change, not a bug fix.
type GaitEstimator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGaitEstimator creates a gait estimator. A non-zero seed makes the
// estimator deterministic, which tests rely on; seed 0 seeds from the clock.
func NewGaitEstimator(seed int64) *GaitEstimator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &GaitEstimator{rng: rand.New(rand.NewSource(seed))}
}

// IsWalking reports whether the walking-detection gate fires for the sample
func IsWalking(s models.MotionSample) bool {
	return s.UserAcceleration.Magnitude() > WalkingThreshold
}

// Estimate returns gait metrics for the sample, or ok=false when the
// walking-detection gate does not fire.
func (g *GaitEstimator) Estimate(s models.MotionSample) (models.GaitMetrics, bool) {
	if !IsWalking(s) {
		return models.GaitMetrics{}, false
	}

	g.mu.Lock()
	stepLength := minStepLength + g.rng.Float64()*(maxStepLength-minStepLength)
	stepTime := minStepTime + g.rng.Float64()*(maxStepTime-minStepTime)
	symmetry := minSymmetry + g.rng.Float64()*(maxSymmetry-minSymmetry)
	g.mu.Unlock()

	return models.GaitMetrics{
		Timestamp:    s.Timestamp,
		StepLength:   stepLength,
		StepTime:     stepTime,
		Cadence:      60 / stepTime,
		GaitSymmetry: symmetry,
		StrideLength: 2 * stepLength,
		WalkingSpeed: stepLength / stepTime,
	}, true
}

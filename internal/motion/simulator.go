package motion

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/sebasr/rehab-service/internal/models"
)

// Simulator generates synthetic device-motion samples at a fixed cadence.
// The signal is a slow postural sway on the gravity vector plus bursts of
// user acceleration that cross the walking threshold every few seconds.
type Simulator struct {
	interval time.Duration

	mu        sync.Mutex
	rng       *rand.Rand
	quit      chan struct{}
	running   bool
	available bool
	phase     float64

	out chan models.MotionSample
}

// NewSimulator creates a motion simulator producing one sample per interval.
// A non-zero seed makes the generated signal deterministic.
func NewSimulator(interval time.Duration, seed int64) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		interval:  interval,
		rng:       rand.New(rand.NewSource(seed)),
		available: true,
		out:       make(chan models.MotionSample, 64),
	}
}

// SetAvailable toggles simulated sensor availability
func (s *Simulator) SetAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = available
}

// Available implements Source.Available
func (s *Simulator) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// Samples implements Source.Samples
func (s *Simulator) Samples() <-chan models.MotionSample {
	return s.out
}

// Start implements Source.Start
func (s *Simulator) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available {
		return ErrUnavailable
	}
	if s.running {
		return nil
	}

	s.quit = make(chan struct{})
	s.running = true
	go s.loop(ctx, s.quit)

	return nil
}

// Stop implements Source.Stop
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.quit)
	s.running = false
}

func (s *Simulator) loop(ctx context.Context, quit chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample := s.next()
			// Never block the delivery path; a slow consumer just
			// misses samples.
			select {
			case s.out <- sample:
			default:
			}
		}
	}
}

// next generates one synthetic sample
func (s *Simulator) next() models.MotionSample {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase += 0.1

	// Slow sway around upright orientation
	gx := 0.05*math.Sin(s.phase) + s.rng.Float64()*0.02 - 0.01
	gy := 0.05*math.Cos(s.phase*0.7) + s.rng.Float64()*0.02 - 0.01

	// Walking bursts: roughly every other second the acceleration
	// magnitude crosses the walking threshold.
	var ax, ay, az float64
	if int(s.phase)%2 == 0 {
		ax = 0.15 + s.rng.Float64()*0.2
		ay = s.rng.Float64() * 0.1
		az = s.rng.Float64() * 0.1
	} else {
		ax = s.rng.Float64() * 0.05
		ay = s.rng.Float64() * 0.05
	}

	return models.MotionSample{
		Gravity:          models.Vector3{X: gx, Y: gy, Z: -0.99},
		UserAcceleration: models.Vector3{X: ax, Y: ay, Z: az},
		Timestamp:        time.Now().UTC(),
	}
}

// Package session owns the active exercise session: sample ingest, metric
// accumulation, lifecycle and scoring.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/metrics"
	"github.com/sebasr/rehab-service/internal/models"
	"github.com/sebasr/rehab-service/internal/motion"
)

var (
	// ErrSessionActive is returned when starting a session while one is
	// already active. Starting never silently replaces the active session.
	ErrSessionActive = errors.New("a session is already active")
)

const (
	defaultWindowSize = 100
	defaultQueueSize  = 256
)

// Options configures an Accumulator
type Options struct {
	// WindowSize caps the raw ingest buffer (oldest evicted first). This
	// window does not bound the session's own metric sequences.
	WindowSize int

	// QueueSize sizes the incoming sample queue
	QueueSize int

	// Source is the motion data source started/stopped with the session
	// lifecycle. May be nil when samples arrive only over HTTP ingest.
	Source motion.Source

	// VRLink is the VR tracker device link. May be nil.
	VRLink motion.VRLink
}

// Snapshot is a consistent read-only view of the accumulator state. The
// latest metrics persist across session boundaries; they reflect the last
// processed sample, not the current session.
type Snapshot struct {
	Session       *models.ExerciseSession `json:"session,omitempty"`
	LatestBalance *models.BalanceMetrics  `json:"latestBalance,omitempty"`
	LatestGait    *models.GaitMetrics     `json:"latestGait,omitempty"`
	WindowLen     int                     `json:"windowLen"`
}

// Accumulator holds the single active session and its growing metric
// sequences. All mutations are serialized: incoming samples are enqueued and
// consumed in arrival order by one dedicated worker, so the delivery path
// never blocks on metric computation.
type Accumulator struct {
	windowSize int
	gait       *metrics.GaitEstimator
	source     motion.Source
	vr         motion.VRLink

	queue chan models.MotionSample
	quit  chan struct{}
	wg    sync.WaitGroup

	mu            sync.Mutex
	active        *models.ExerciseSession
	window        []models.MotionSample
	latestBalance *models.BalanceMetrics
	latestGait    *models.GaitMetrics
	subs          map[int]chan Event
	nextSub       int
}

// NewAccumulator creates an accumulator and starts its processing worker
func NewAccumulator(gait *metrics.GaitEstimator, opts Options) *Accumulator {
	if opts.WindowSize <= 0 {
		opts.WindowSize = defaultWindowSize
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}

	a := &Accumulator{
		windowSize: opts.WindowSize,
		gait:       gait,
		source:     opts.Source,
		vr:         opts.VRLink,
		queue:      make(chan models.MotionSample, opts.QueueSize),
		quit:       make(chan struct{}),
		subs:       make(map[int]chan Event),
	}

	a.wg.Add(1)
	go a.run()

	return a
}

// Close stops the processing worker. The accumulator must not be used after
// Close.
func (a *Accumulator) Close() {
	close(a.quit)
	a.wg.Wait()
}

// Start begins a new session. It fails with ErrSessionActive when a session
// is already in progress. The returned advisories describe sensors that
// could not be started; an unavailable sensor is not fatal, tracking for it
// simply does not begin.
func (a *Accumulator) Start(userID uuid.UUID, exercise models.ExerciseType, difficulty models.Difficulty) (*models.ExerciseSession, []string, error) {
	a.mu.Lock()
	if a.active != nil {
		a.mu.Unlock()
		return nil, nil, ErrSessionActive
	}

	s := &models.ExerciseSession{
		ID:             uuid.New(),
		UserID:         userID,
		ExerciseType:   exercise,
		Difficulty:     difficulty,
		StartTime:      time.Now().UTC(),
		BalanceMetrics: []models.BalanceMetrics{},
		GaitMetrics:    []models.GaitMetrics{},
		VRTracking:     []models.VRTrackingData{},
	}
	a.active = s
	snapshot := copySession(s)
	a.mu.Unlock()

	var advisories []string
	if a.source != nil {
		if err := a.source.Start(context.Background()); err != nil {
			log.Printf("motion source did not start: %v", err)
			advisories = append(advisories, "motion sensors unavailable, tracking disabled")
		}
	}
	if a.vr != nil {
		if err := a.vr.Start(context.Background()); err != nil {
			log.Printf("vr link did not start: %v", err)
			advisories = append(advisories, "vr tracker unavailable")
		}
	}

	a.publish(Event{Type: EventSessionStarted, SessionID: s.ID, Timestamp: s.StartTime})

	return snapshot, advisories, nil
}

// Offer enqueues a sample for processing without blocking. It returns false
// when the queue is full and the sample was dropped.
func (a *Accumulator) Offer(s models.MotionSample) bool {
	select {
	case a.queue <- s:
		return true
	default:
		return false
	}
}

// End finalizes the active session and returns it, transferring ownership to
// the caller. It returns nil when no session is active (ending twice is a
// no-op). Samples arriving after End returns are never appended to the
// finalized session.
func (a *Accumulator) End() *models.ExerciseSession {
	a.mu.Lock()
	if a.active == nil {
		a.mu.Unlock()
		return nil
	}

	s := a.active
	now := time.Now().UTC()
	s.EndTime = &now
	s.DurationSeconds = now.Sub(s.StartTime).Seconds()
	s.OverallScore = Score(s)
	a.active = nil
	a.mu.Unlock()

	if a.source != nil {
		a.source.Stop()
	}
	if a.vr != nil {
		a.vr.Stop()
	}

	a.publish(Event{Type: EventSessionEnded, SessionID: s.ID, Timestamp: now})

	return s
}

// ActiveID returns the identity of the active session, if any
func (a *Accumulator) ActiveID() (uuid.UUID, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == nil {
		return uuid.Nil, false
	}
	return a.active.ID, true
}

// Snapshot returns a deep copy of the current accumulator state
func (a *Accumulator) Snapshot() *Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := &Snapshot{WindowLen: len(a.window)}
	if a.active != nil {
		snap.Session = copySession(a.active)
	}
	if a.latestBalance != nil {
		b := *a.latestBalance
		snap.LatestBalance = &b
	}
	if a.latestGait != nil {
		g := *a.latestGait
		snap.LatestGait = &g
	}
	return snap
}

// Subscribe registers for change events. The returned cancel function must
// be called to release the subscription.
func (a *Accumulator) Subscribe() (<-chan Event, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.nextSub
	a.nextSub++
	ch := make(chan Event, 16)
	a.subs[id] = ch

	cancel := func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if _, ok := a.subs[id]; ok {
			delete(a.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// run is the single processing worker. It consumes the sample queue and,
// when a motion source is attached, its stream, preserving arrival order.
func (a *Accumulator) run() {
	defer a.wg.Done()

	var sourceSamples <-chan models.MotionSample
	if a.source != nil {
		sourceSamples = a.source.Samples()
	}

	for {
		select {
		case <-a.quit:
			return
		case s := <-a.queue:
			a.process(s)
		case s := <-sourceSamples:
			a.process(s)
		}
	}
}

// process derives metrics from one sample and appends them to the active
// session. Samples arriving while no session is active only feed the raw
// ingest window.
func (a *Accumulator) process(sample models.MotionSample) {
	a.mu.Lock()

	a.window = append(a.window, sample)
	if len(a.window) > a.windowSize {
		a.window = a.window[1:]
	}

	if a.active == nil {
		a.mu.Unlock()
		return
	}

	balance := metrics.ComputeBalance(sample)
	a.active.BalanceMetrics = append(a.active.BalanceMetrics, balance)
	a.latestBalance = &balance

	a.active.VRTracking = append(a.active.VRTracking, metrics.DeriveVRTracking(sample))

	if gait, ok := a.gait.Estimate(sample); ok {
		a.active.GaitMetrics = append(a.active.GaitMetrics, gait)
		a.latestGait = &gait
	}

	sessionID := a.active.ID
	a.mu.Unlock()

	a.publish(Event{Type: EventMetricsUpdated, SessionID: sessionID, Timestamp: sample.Timestamp})
}

// publish fans an event out to subscribers without blocking
func (a *Accumulator) publish(e Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, ch := range a.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// copySession returns a deep copy of a session
func copySession(s *models.ExerciseSession) *models.ExerciseSession {
	out := *s
	out.BalanceMetrics = append([]models.BalanceMetrics(nil), s.BalanceMetrics...)
	out.GaitMetrics = append([]models.GaitMetrics(nil), s.GaitMetrics...)
	out.VRTracking = append([]models.VRTrackingData(nil), s.VRTracking...)
	if s.EndTime != nil {
		t := *s.EndTime
		out.EndTime = &t
	}
	return out
}

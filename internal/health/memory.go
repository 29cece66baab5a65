package health

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

// MemorySink is an in-memory health store standing in for the platform
// health-data service
type MemorySink struct {
	mu         sync.Mutex
	authorized bool
	summaries  map[uuid.UUID]*models.HealthSummary
}

// NewMemorySink creates an in-memory sink. Authorization mirrors the
// platform permission prompt and is fixed at construction.
func NewMemorySink(authorized bool) *MemorySink {
	return &MemorySink{
		authorized: authorized,
		summaries:  make(map[uuid.UUID]*models.HealthSummary),
	}
}

// Authorized implements Sink.Authorized
func (m *MemorySink) Authorized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authorized
}

// WriteSummary implements Sink.WriteSummary
func (m *MemorySink) WriteSummary(_ context.Context, summary *models.HealthSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.authorized {
		return ErrUnauthorized
	}
	if _, ok := m.summaries[summary.SessionID]; ok {
		return ErrDuplicateSummary
	}

	copied := *summary
	m.summaries[summary.SessionID] = &copied
	return nil
}

// QueryAggregates implements Sink.QueryAggregates. Session summaries carry
// neither heart-rate nor fall data, so AverageHeartRate and FallEvents stay
// zero in this sink; only a platform-backed store can supply them.
func (m *MemorySink) QueryAggregates(_ context.Context, userID uuid.UUID, start, end time.Time) (*models.HealthAggregates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.authorized {
		return nil, ErrUnauthorized
	}

	agg := &models.HealthAggregates{}
	for _, s := range m.summaries {
		if s.UserID != userID {
			continue
		}
		if s.Start.Before(start) || s.End.After(end) {
			continue
		}
		agg.Steps += s.Steps
		agg.DistanceMeters += s.DistanceMeters
		agg.Calories += s.Calories
	}
	return agg, nil
}

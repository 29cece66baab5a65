// Package health abstracts the platform health-data store. Writes and reads
// require prior authorization; unauthorized access degrades to an advisory,
// never a crash.
package health

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

var (
	// ErrUnauthorized is returned when health-data access has not been
	// granted. Callers skip the operation and surface an advisory.
	ErrUnauthorized = errors.New("health data access not authorized")

	// ErrDuplicateSummary is returned when a summary for the session was
	// already written; summaries are write-once.
	ErrDuplicateSummary = errors.New("summary already written for session")
)

// Sink accepts finalized session summaries and answers historical aggregate
// queries
type Sink interface {
	// WriteSummary stores a finalized session summary, write-once per
	// session
	WriteSummary(ctx context.Context, summary *models.HealthSummary) error

	// QueryAggregates returns historical aggregates for the user over a
	// date range
	QueryAggregates(ctx context.Context, userID uuid.UUID, start, end time.Time) (*models.HealthAggregates, error)

	// Authorized reports whether health-data access has been granted
	Authorized() bool
}

// SummaryFromSession builds the health summary for a finalized session. Each
// gait metric counts as one step; distance is the sum of step lengths.
func SummaryFromSession(s *models.ExerciseSession) *models.HealthSummary {
	var distance float64
	for _, g := range s.GaitMetrics {
		distance += g.StepLength
	}

	end := s.StartTime
	if s.EndTime != nil {
		end = *s.EndTime
	}

	return &models.HealthSummary{
		SessionID:      s.ID,
		UserID:         s.UserID,
		Steps:          len(s.GaitMetrics),
		DistanceMeters: distance,
		// Rough active-minutes estimate, 4 kcal per minute
		Calories: s.DurationSeconds / 60 * 4,
		Start:    s.StartTime,
		End:      end,
	}
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

// ErrProgressNotFound is returned when no progress record exists for a user
var ErrProgressNotFound = errors.New("progress not found")

// ProgressRepository stores the single progress record per user
type ProgressRepository interface {
	// Upsert replaces the user's progress record; progress is recomputed
	// in full after every session end
	Upsert(ctx context.Context, progress *models.RehabilitationProgress) error

	// GetByUser retrieves a user's progress record
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.RehabilitationProgress, error)
}

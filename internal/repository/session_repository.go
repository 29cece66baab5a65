// Package repository provides data access interfaces and implementations.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when a session with the same ID was
	// already saved; the session log is append-only
	ErrSessionExists = errors.New("session already saved")
)

// SessionRepository defines the append-only session log. Only finalized
// sessions are saved; saved sessions are never updated.
type SessionRepository interface {
	// Save appends a finalized session to the log
	Save(ctx context.Context, session *models.ExerciseSession) error

	// GetByID retrieves a session with its full metric sequences
	GetByID(ctx context.Context, id uuid.UUID) (*models.ExerciseSession, error)

	// ListByUser retrieves a user's sessions in chronological order. A
	// positive limit bounds the result to the most recent limit sessions;
	// limit <= 0 returns the full history.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.ExerciseSession, error)
}

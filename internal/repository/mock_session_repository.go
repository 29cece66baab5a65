package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

// MockSessionRepository is a mock implementation of SessionRepository for
// testing
type MockSessionRepository struct {
	SaveFunc       func(ctx context.Context, session *models.ExerciseSession) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.ExerciseSession, error)
	ListByUserFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]*models.ExerciseSession, error)
}

// NewMockSessionRepository creates a new mock session repository with
// default implementations
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		SaveFunc: func(_ context.Context, _ *models.ExerciseSession) error {
			return nil
		},
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*models.ExerciseSession, error) {
			return nil, ErrSessionNotFound
		},
		ListByUserFunc: func(_ context.Context, _ uuid.UUID, _ int) ([]*models.ExerciseSession, error) {
			return []*models.ExerciseSession{}, nil
		},
	}
}

// Save implements SessionRepository.Save
func (m *MockSessionRepository) Save(ctx context.Context, session *models.ExerciseSession) error {
	return m.SaveFunc(ctx, session)
}

// GetByID implements SessionRepository.GetByID
func (m *MockSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ExerciseSession, error) {
	return m.GetByIDFunc(ctx, id)
}

// ListByUser implements SessionRepository.ListByUser
func (m *MockSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.ExerciseSession, error) {
	return m.ListByUserFunc(ctx, userID, limit)
}

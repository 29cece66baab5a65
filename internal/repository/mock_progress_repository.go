package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

// MockProgressRepository is a mock implementation of ProgressRepository for
// testing
type MockProgressRepository struct {
	UpsertFunc    func(ctx context.Context, progress *models.RehabilitationProgress) error
	GetByUserFunc func(ctx context.Context, userID uuid.UUID) (*models.RehabilitationProgress, error)
}

// NewMockProgressRepository creates a new mock progress repository with
// default implementations
func NewMockProgressRepository() *MockProgressRepository {
	return &MockProgressRepository{
		UpsertFunc: func(_ context.Context, _ *models.RehabilitationProgress) error {
			return nil
		},
		GetByUserFunc: func(_ context.Context, _ uuid.UUID) (*models.RehabilitationProgress, error) {
			return nil, ErrProgressNotFound
		},
	}
}

// Upsert implements ProgressRepository.Upsert
func (m *MockProgressRepository) Upsert(ctx context.Context, progress *models.RehabilitationProgress) error {
	return m.UpsertFunc(ctx, progress)
}

// GetByUser implements ProgressRepository.GetByUser
func (m *MockProgressRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.RehabilitationProgress, error) {
	return m.GetByUserFunc(ctx, userID)
}

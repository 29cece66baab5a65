package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

// MockPredictionRepository is a mock implementation of PredictionRepository
// for testing
type MockPredictionRepository struct {
	SaveFunc         func(ctx context.Context, prediction *models.MLPrediction) error
	ListByUserFunc   func(ctx context.Context, userID uuid.UUID, limit int) ([]*models.MLPrediction, error)
	GetBySessionFunc func(ctx context.Context, sessionID uuid.UUID) (*models.MLPrediction, error)
}

// NewMockPredictionRepository creates a new mock prediction repository with
// default implementations
func NewMockPredictionRepository() *MockPredictionRepository {
	return &MockPredictionRepository{
		SaveFunc: func(_ context.Context, _ *models.MLPrediction) error {
			return nil
		},
		ListByUserFunc: func(_ context.Context, _ uuid.UUID, _ int) ([]*models.MLPrediction, error) {
			return []*models.MLPrediction{}, nil
		},
		GetBySessionFunc: func(_ context.Context, _ uuid.UUID) (*models.MLPrediction, error) {
			return nil, ErrPredictionNotFound
		},
	}
}

// Save implements PredictionRepository.Save
func (m *MockPredictionRepository) Save(ctx context.Context, prediction *models.MLPrediction) error {
	return m.SaveFunc(ctx, prediction)
}

// ListByUser implements PredictionRepository.ListByUser
func (m *MockPredictionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.MLPrediction, error) {
	return m.ListByUserFunc(ctx, userID, limit)
}

// GetBySession implements PredictionRepository.GetBySession
func (m *MockPredictionRepository) GetBySession(ctx context.Context, sessionID uuid.UUID) (*models.MLPrediction, error) {
	return m.GetBySessionFunc(ctx, sessionID)
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

// PredictionRepository logs generated predictions for later accuracy
// introspection
type PredictionRepository interface {
	// Save stores a generated prediction
	Save(ctx context.Context, prediction *models.MLPrediction) error

	// ListByUser retrieves a user's predictions, most recent first
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.MLPrediction, error)

	// GetBySession retrieves the prediction generated for a session
	GetBySession(ctx context.Context, sessionID uuid.UUID) (*models.MLPrediction, error)
}

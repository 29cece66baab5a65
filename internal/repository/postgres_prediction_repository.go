package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/database"
	"github.com/sebasr/rehab-service/internal/models"
)

// ErrPredictionNotFound is returned when no prediction exists for a session
var ErrPredictionNotFound = errors.New("prediction not found")

// PostgresPredictionRepository implements PredictionRepository using
// PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new PostgreSQL prediction
// repository
func NewPostgresPredictionRepository(db *database.DB) *PostgresPredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// Save stores a generated prediction
func (r *PostgresPredictionRepository) Save(ctx context.Context, prediction *models.MLPrediction) error {
	query := `
		INSERT INTO predictions (
			id, session_id, user_id,
			predicted_difficulty, recommended_exercise, confidence,
			risk_assessment, next_session_recommendation, generated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		prediction.ID, prediction.SessionID, prediction.UserID,
		prediction.PredictedDifficulty, prediction.RecommendedExercise, prediction.Confidence,
		prediction.RiskAssessment, prediction.NextSessionRecommendation, prediction.GeneratedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("prediction already saved: %w", err)
		}
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's predictions, most recent first
func (r *PostgresPredictionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.MLPrediction, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT
			id, session_id, user_id,
			predicted_difficulty, recommended_exercise, confidence,
			risk_assessment, next_session_recommendation, generated_at
		FROM predictions
		WHERE user_id = $1
		ORDER BY generated_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions by user: %w", err)
	}
	defer rows.Close()

	var results []*models.MLPrediction
	for rows.Next() {
		p := &models.MLPrediction{}
		err := rows.Scan(
			&p.ID, &p.SessionID, &p.UserID,
			&p.PredictedDifficulty, &p.RecommendedExercise, &p.Confidence,
			&p.RiskAssessment, &p.NextSessionRecommendation, &p.GeneratedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prediction rows: %w", err)
	}

	return results, nil
}

// GetBySession retrieves the prediction generated for a session
func (r *PostgresPredictionRepository) GetBySession(ctx context.Context, sessionID uuid.UUID) (*models.MLPrediction, error) {
	query := `
		SELECT
			id, session_id, user_id,
			predicted_difficulty, recommended_exercise, confidence,
			risk_assessment, next_session_recommendation, generated_at
		FROM predictions
		WHERE session_id = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`

	p := &models.MLPrediction{}
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&p.ID, &p.SessionID, &p.UserID,
		&p.PredictedDifficulty, &p.RecommendedExercise, &p.Confidence,
		&p.RiskAssessment, &p.NextSessionRecommendation, &p.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to get prediction by session: %w", err)
	}

	return p, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/database"
	"github.com/sebasr/rehab-service/internal/models"
)

// PostgresProgressRepository implements ProgressRepository using PostgreSQL
type PostgresProgressRepository struct {
	db *database.DB
}

// NewPostgresProgressRepository creates a new PostgreSQL progress repository
func NewPostgresProgressRepository(db *database.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{db: db}
}

// Upsert replaces the user's progress record
func (r *PostgresProgressRepository) Upsert(ctx context.Context, progress *models.RehabilitationProgress) error {
	trendJSON, err := json.Marshal(progress.FallRiskTrend)
	if err != nil {
		return fmt.Errorf("failed to marshal fall risk trend: %w", err)
	}

	if progress.UpdatedAt.IsZero() {
		progress.UpdatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO progress (
			user_id, total_sessions, avg_stability_score, avg_gait_score,
			fall_risk_trend, improvement_rate, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (user_id) DO UPDATE SET
			total_sessions = EXCLUDED.total_sessions,
			avg_stability_score = EXCLUDED.avg_stability_score,
			avg_gait_score = EXCLUDED.avg_gait_score,
			fall_risk_trend = EXCLUDED.fall_risk_trend,
			improvement_rate = EXCLUDED.improvement_rate,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		progress.UserID, progress.TotalSessions,
		progress.AverageStabilityScore, progress.AverageGaitScore,
		trendJSON, progress.ImprovementRate, progress.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	return nil
}

// GetByUser retrieves a user's progress record
func (r *PostgresProgressRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.RehabilitationProgress, error) {
	query := `
		SELECT
			user_id, total_sessions, avg_stability_score, avg_gait_score,
			fall_risk_trend, improvement_rate, updated_at
		FROM progress
		WHERE user_id = $1
	`

	progress := &models.RehabilitationProgress{}
	var trendJSON []byte

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&progress.UserID, &progress.TotalSessions,
		&progress.AverageStabilityScore, &progress.AverageGaitScore,
		&trendJSON, &progress.ImprovementRate, &progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress by user: %w", err)
	}

	if err := json.Unmarshal(trendJSON, &progress.FallRiskTrend); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fall risk trend: %w", err)
	}

	return progress, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/database"
	"github.com/sebasr/rehab-service/internal/models"
)

// PostgresSessionRepository implements SessionRepository using PostgreSQL.
// Metric sequences are stored as JSONB alongside the session row.
type PostgresSessionRepository struct {
	db *database.DB
}

// NewPostgresSessionRepository creates a new PostgreSQL session repository
func NewPostgresSessionRepository(db *database.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// Save appends a finalized session to the log
func (r *PostgresSessionRepository) Save(ctx context.Context, session *models.ExerciseSession) error {
	balanceJSON, err := json.Marshal(session.BalanceMetrics)
	if err != nil {
		return fmt.Errorf("failed to marshal balance metrics: %w", err)
	}
	gaitJSON, err := json.Marshal(session.GaitMetrics)
	if err != nil {
		return fmt.Errorf("failed to marshal gait metrics: %w", err)
	}
	vrJSON, err := json.Marshal(session.VRTracking)
	if err != nil {
		return fmt.Errorf("failed to marshal vr tracking: %w", err)
	}

	query := `
		INSERT INTO sessions (
			id, user_id, exercise_type, difficulty,
			started_at, ended_at, duration_seconds, overall_score,
			balance_metrics, gait_metrics, vr_tracking
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err = r.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.ExerciseType, session.Difficulty,
		session.StartTime, session.EndTime, session.DurationSeconds, session.OverallScore,
		balanceJSON, gaitJSON, vrJSON,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrSessionExists
		}
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// GetByID retrieves a session with its full metric sequences
func (r *PostgresSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ExerciseSession, error) {
	query := `
		SELECT
			id, user_id, exercise_type, difficulty,
			started_at, ended_at, duration_seconds, overall_score,
			balance_metrics, gait_metrics, vr_tracking
		FROM sessions
		WHERE id = $1
	`

	session, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}

	return session, nil
}

// ListByUser retrieves a user's sessions in chronological order. A positive
// limit bounds the result to the user's most recent limit sessions; limit <= 0
// returns the full history.
func (r *PostgresSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.ExerciseSession, error) {
	query := `
		SELECT
			id, user_id, exercise_type, difficulty,
			started_at, ended_at, duration_seconds, overall_score,
			balance_metrics, gait_metrics, vr_tracking
		FROM sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
	`

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+` LIMIT $2`, userID, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions by user: %w", err)
	}
	defer rows.Close()

	var results []*models.ExerciseSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		results = append(results, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	// Rows come back newest first; reverse to the chronological order callers
	// expect.
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}

	return results, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSession scans one session row, unmarshaling the JSONB metric series
func scanSession(row rowScanner) (*models.ExerciseSession, error) {
	session := &models.ExerciseSession{}
	var endedAt sql.NullTime
	var balanceJSON, gaitJSON, vrJSON []byte

	err := row.Scan(
		&session.ID, &session.UserID, &session.ExerciseType, &session.Difficulty,
		&session.StartTime, &endedAt, &session.DurationSeconds, &session.OverallScore,
		&balanceJSON, &gaitJSON, &vrJSON,
	)
	if err != nil {
		return nil, err
	}

	if endedAt.Valid {
		session.EndTime = &endedAt.Time
	}

	if err := json.Unmarshal(balanceJSON, &session.BalanceMetrics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balance metrics: %w", err)
	}
	if err := json.Unmarshal(gaitJSON, &session.GaitMetrics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gait metrics: %w", err)
	}
	if err := json.Unmarshal(vrJSON, &session.VRTracking); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vr tracking: %w", err)
	}

	return session, nil
}

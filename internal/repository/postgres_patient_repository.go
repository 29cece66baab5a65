package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/database"
	"github.com/sebasr/rehab-service/internal/models"
)

// PostgresPatientRepository implements PatientRepository using PostgreSQL
type PostgresPatientRepository struct {
	db *database.DB
}

// NewPostgresPatientRepository creates a new PostgreSQL patient repository
func NewPostgresPatientRepository(db *database.DB) *PostgresPatientRepository {
	return &PostgresPatientRepository{db: db}
}

// Create creates a new patient account
func (r *PostgresPatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	query := `
		INSERT INTO patients (
			id, email, password_hash, display_name, condition,
			created_at, updated_at, last_login_at, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}

	now := time.Now()
	if patient.CreatedAt.IsZero() {
		patient.CreatedAt = now
	}
	if patient.UpdatedAt.IsZero() {
		patient.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		patient.ID, patient.Email, patient.PasswordHash,
		patient.DisplayName, patient.Condition,
		patient.CreatedAt, patient.UpdatedAt, patient.LastLoginAt, patient.IsActive,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrPatientExists
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}

	return nil
}

// GetByID retrieves a patient by their ID
func (r *PostgresPatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	query := `
		SELECT
			id, email, password_hash, display_name, condition,
			created_at, updated_at, last_login_at, is_active
		FROM patients
		WHERE id = $1
	`
	return r.scanPatient(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a patient by their email address
func (r *PostgresPatientRepository) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	query := `
		SELECT
			id, email, password_hash, display_name, condition,
			created_at, updated_at, last_login_at, is_active
		FROM patients
		WHERE email = $1
	`
	return r.scanPatient(r.db.QueryRowContext(ctx, query, email))
}

// UpdateLastLogin updates the patient's last login timestamp
func (r *PostgresPatientRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE patients
		SET last_login_at = $1, updated_at = $1
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrPatientNotFound
	}

	return nil
}

func (r *PostgresPatientRepository) scanPatient(row *sql.Row) (*models.Patient, error) {
	patient := &models.Patient{}
	var displayName, condition sql.NullString
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&patient.ID, &patient.Email, &patient.PasswordHash,
		&displayName, &condition,
		&patient.CreatedAt, &patient.UpdatedAt, &lastLoginAt, &patient.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to scan patient: %w", err)
	}

	if displayName.Valid {
		patient.DisplayName = &displayName.String
	}
	if condition.Valid {
		patient.Condition = &condition.String
	}
	if lastLoginAt.Valid {
		patient.LastLoginAt = &lastLoginAt.Time
	}

	return patient, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

var (
	// ErrPatientNotFound is returned when a patient is not found
	ErrPatientNotFound = errors.New("patient not found")

	// ErrPatientExists is returned when a patient with the same email
	// already exists
	ErrPatientExists = errors.New("patient with this email already exists")
)

// PatientRepository defines the interface for patient account access
type PatientRepository interface {
	// Create creates a new patient account
	Create(ctx context.Context, patient *models.Patient) error

	// GetByID retrieves a patient by their ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error)

	// GetByEmail retrieves a patient by their email address
	GetByEmail(ctx context.Context, email string) (*models.Patient, error)

	// UpdateLastLogin updates the patient's last login timestamp
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

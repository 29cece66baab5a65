package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/models"
)

// MockPatientRepository is a mock implementation of PatientRepository for
// testing
type MockPatientRepository struct {
	CreateFunc          func(ctx context.Context, patient *models.Patient) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*models.Patient, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*models.Patient, error)
	UpdateLastLoginFunc func(ctx context.Context, id uuid.UUID) error
}

// NewMockPatientRepository creates a new mock patient repository with
// default implementations
func NewMockPatientRepository() *MockPatientRepository {
	return &MockPatientRepository{
		CreateFunc: func(_ context.Context, _ *models.Patient) error {
			return nil
		},
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*models.Patient, error) {
			return nil, ErrPatientNotFound
		},
		GetByEmailFunc: func(_ context.Context, _ string) (*models.Patient, error) {
			return nil, ErrPatientNotFound
		},
		UpdateLastLoginFunc: func(_ context.Context, _ uuid.UUID) error {
			return nil
		},
	}
}

// Create implements PatientRepository.Create
func (m *MockPatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return m.CreateFunc(ctx, patient)
}

// GetByID implements PatientRepository.GetByID
func (m *MockPatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	return m.GetByIDFunc(ctx, id)
}

// GetByEmail implements PatientRepository.GetByEmail
func (m *MockPatientRepository) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	return m.GetByEmailFunc(ctx, email)
}

// UpdateLastLogin implements PatientRepository.UpdateLastLogin
func (m *MockPatientRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return m.UpdateLastLoginFunc(ctx, id)
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a patient account in the system
type Patient struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never expose in JSON
	DisplayName  *string    `json:"displayName,omitempty" db:"display_name"`
	Condition    *string    `json:"condition,omitempty" db:"condition"` // e.g. "peripheral_neuropathy"
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	IsActive     bool       `json:"isActive" db:"is_active"`
}

// PatientResponse represents a patient for API responses (excludes sensitive
// fields)
type PatientResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"displayName,omitempty"`
	Condition   *string    `json:"condition,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	IsActive    bool       `json:"isActive"`
}

// ToResponse converts a Patient to a PatientResponse (safe for API)
func (p *Patient) ToResponse() *PatientResponse {
	return &PatientResponse{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Condition:   p.Condition,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		LastLoginAt: p.LastLoginAt,
		IsActive:    p.IsActive,
	}
}

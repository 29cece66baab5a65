package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/auth"
	"github.com/sebasr/rehab-service/internal/middleware"
	"github.com/sebasr/rehab-service/internal/models"
	"github.com/sebasr/rehab-service/internal/repository"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	patientRepo repository.PatientRepository
	jwtService  *auth.JWTService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(patientRepo repository.PatientRepository, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		patientRepo: patientRepo,
		jwtService:  jwtService,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8,max=72"`
	DisplayName *string `json:"displayName,omitempty"`
	Condition   *string `json:"condition,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	AccessToken string                  `json:"accessToken"`
	ExpiresAt   time.Time               `json:"expiresAt"`
	Patient     *models.PatientResponse `json:"patient"`
}

// Register handles patient registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	// Normalize email
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if patient already exists
	existing, err := h.patientRepo.GetByEmail(c.Request.Context(), email)
	if err == nil && existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "patient_exists",
			"message": "A patient with this email already exists",
		})
		return
	}

	// Hash password
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to process registration",
		})
		return
	}

	patient := &models.Patient{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  req.DisplayName,
		Condition:    req.Condition,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		IsActive:     true,
	}

	if err := h.patientRepo.Create(c.Request.Context(), patient); err != nil {
		if errors.Is(err, repository.ErrPatientExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "patient_exists",
				"message": "A patient with this email already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to create patient",
		})
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(patient.ID, patient.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to generate access token",
		})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(h.jwtService.GetAccessTokenTTL()),
		Patient:     patient.ToResponse(),
	})
}

// Login handles patient login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	// Normalize email
	email := strings.ToLower(strings.TrimSpace(req.Email))

	patient, err := h.patientRepo.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_credentials",
				"message": "Invalid email or password",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to authenticate",
		})
		return
	}

	if !patient.IsActive {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "account_disabled",
			"message": "This account has been disabled",
		})
		return
	}

	if !auth.VerifyPassword(req.Password, patient.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": "Invalid email or password",
		})
		return
	}

	// Update last login (non-blocking)
	_ = h.patientRepo.UpdateLastLogin(c.Request.Context(), patient.ID)

	accessToken, err := h.jwtService.GenerateAccessToken(patient.ID, patient.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to generate access token",
		})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(h.jwtService.GetAccessTokenTTL()),
		Patient:     patient.ToResponse(),
	})
}

// Me returns the authenticated patient's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	patient, err := h.patientRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "patient_not_found",
				"message": "Patient not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient": patient.ToResponse()})
}

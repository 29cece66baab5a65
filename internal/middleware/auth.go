// Package middleware provides HTTP middleware for the rehabilitation
// service.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/auth"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated patient's ID
	UserIDKey ContextKey = "user_id"

	// UserEmailKey is the context key for the authenticated patient's email
	UserEmailKey ContextKey = "user_email"
)

var errNotAuthenticated = errors.New("user not authenticated")

// AuthMiddleware authenticates requests using bearer JWTs issued to
// patient accounts.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Required rejects the request with 401 unless it carries a valid token.
func (m *AuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		patientID, email, err := m.authenticate(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), patientID)
		c.Set(string(UserEmailKey), email)
		c.Next()
	}
}

// Optional records the patient identity when a valid token is present and
// lets the request through either way. Used on the motion-ingest routes so
// a phone can stream during device setup, before login completes.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if patientID, email, err := m.authenticate(c); err == nil {
			c.Set(string(UserIDKey), patientID)
			c.Set(string(UserEmailKey), email)
		}
		c.Next()
	}
}

// authenticate pulls the bearer token off the request, validates it, and
// returns the patient identity it carries.
func (m *AuthMiddleware) authenticate(c *gin.Context) (uuid.UUID, string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return uuid.Nil, "", errors.New("missing authorization header")
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return uuid.Nil, "", errors.New("invalid authorization header format")
	}
	if token == "" {
		return uuid.Nil, "", errors.New("missing token")
	}

	claims, err := m.jwtService.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}

	patientID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, "", errors.New("invalid user ID in token")
	}
	return patientID, claims.Email, nil
}

// GetUserID retrieves the authenticated patient's ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	v, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, errNotAuthenticated
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("invalid user ID format")
	}
	return id, nil
}

// MustGetUserID retrieves the patient ID from context, panicking if absent.
// Only call from handlers behind Required().
func MustGetUserID(c *gin.Context) uuid.UUID {
	id, err := GetUserID(c)
	if err != nil {
		panic("user ID not found in context - ensure Required() middleware is applied")
	}
	return id
}

package services

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/backend/pkg/config"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// AuthService authenticates the clinic admin and issues session tokens.
// Credentials come from configuration as an email plus a bcrypt hash; the
// plaintext password never lives in the process.
type AuthService struct {
	cfg config.AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{cfg: cfg}
}

// Login verifies the admin credentials and returns a signed session token.
// Wrong email and wrong password produce the same unauthorized error so the
// response does not reveal which half was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.AdminEmail)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password))
	if !emailMatch || passwordErr != nil {
		return "", apperrors.NewUnauthorizedError("invalid email or password")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign session token", err)
	}
	return token, nil
}

// ValidateToken checks a session token and returns its subject.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewUnauthorizedError("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.NewUnauthorizedError("invalid or expired session token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", apperrors.NewUnauthorizedError("invalid session token claims")
	}
	return claims.Subject, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*AdminSession, error)
}

type LoginInput struct {
	Password string `json:"password"`
}

type AdminSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type authService struct {
	passwordHash []byte
	tokens       TokenService
}

// NewAuthService checks admin logins against a bcrypt hash. An empty hash disables admin login.
func NewAuthService(passwordHash string, tokens TokenService) AuthService {
	return &authService{
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
	}
}

func (s *authService) Login(_ context.Context, input LoginInput) (*AdminSession, error) {
	if len(s.passwordHash) == 0 {
		return nil, ErrAdminLoginDisabled
	}

	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	token, expiresAt, err := s.tokens.IssueAdminToken()
	if err != nil {
		return nil, err
	}
	return &AdminSession{Token: token, ExpiresAt: expiresAt}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/museumguide/backend/internal/models"
	"github.com/museumguide/backend/internal/repositories"
)

// ErrUnauthorized is returned when an email is not on the administrator
// allow-list. It is distinct from validation errors so callers can present
// a login prompt instead of a form error.
var ErrUnauthorized = errors.New("email is not a registered administrator")

// AdminRepository is the interface that wraps the allow-list lookup.
type AdminRepository interface {
	// GetByEmail returns the registered administrator for a normalized
	// email, or repositories.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// TokenIssuer signs session tokens for authenticated administrators.
type TokenIssuer interface {
	GenerateSessionToken(email string) (string, error)
}

// AdminService is the admin gate: a deterministic, case-insensitive
// allow-list membership test, plus session-token issuance on success.
type AdminService struct {
	repo   AdminRepository
	tokens TokenIssuer
}

// NewAdminService creates a new admin service
func NewAdminService(repo AdminRepository, tokens TokenIssuer) *AdminService {
	return &AdminService{
		repo:   repo,
		tokens: tokens,
	}
}

// Authenticate checks the email against the allow-list and returns a
// session for it. Unknown emails yield ErrUnauthorized.
func (s *AdminService) Authenticate(ctx context.Context, email string) (*models.AdminSession, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, ErrUnauthorized
	}

	admin, err := s.repo.GetByEmail(ctx, normalized)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check administrator email: %w", err)
	}

	token, err := s.tokens.GenerateSessionToken(admin.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &models.AdminSession{Email: admin.Email, Token: token}, nil
}

package ports

import (
	"context"

	"github.com/postable/content-api/internal/core/domain"
)

// TokenPair is the result of a successful login: a short-lived access token
// and a long-lived refresh token, both class-tagged.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements registration, login, and access-token refresh.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials and mints a token pair. clientIP feeds the
	// login throttle and may be empty.
	Login(ctx context.Context, email, password, clientIP string) (*TokenPair, error)
	// Refresh validates a refresh-class token and mints a fresh access token.
	// The refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetUser(ctx context.Context, id uint) (*domain.User, error)
}

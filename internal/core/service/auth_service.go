package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/postable/content-api/internal/core/domain"
	"github.com/postable/content-api/internal/core/ports"
	"github.com/postable/content-api/internal/core/token"
)

// AuthService implements registration, login, and access-token refresh.
type AuthService struct {
	users      ports.UserRepository
	codec      *token.Codec
	limiter    ports.LoginLimiter // optional, nil disables throttling
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *token.Codec, limiter ports.LoginLimiter, accessTTL, refreshTTL time.Duration, logger zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		codec:      codec,
		limiter:    limiter,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// AccessTTL reports the configured access-token lifetime, used by the
// transport layer to set cookie max-age.
func (s *AuthService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL reports the configured refresh-token lifetime.
func (s *AuthService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials and mints an access/refresh token pair. Unknown
// email and wrong password both surface as ErrInvalidCredentials so the
// response never reveals which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password, clientIP string) (*ports.TokenPair, error) {
	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, email, clientIP); err != nil {
			if errors.Is(err, domain.ErrRateLimited) {
				return nil, err
			}
			// Throttle backend outage must not lock everyone out.
			s.logger.Warn().Err(err).Msg("login limiter unavailable")
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.codec.Encode(user.ID, token.ClassAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Encode(user.ID, token.ClassRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("login successful")
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh validates a refresh-class token and mints a fresh access token
// with a new TTL window. The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.codec.DecodeClass(refreshToken, token.ClassRefresh)
	if err != nil {
		if errors.Is(err, token.ErrWrongClass) {
			return "", domain.ErrNotRefreshToken
		}
		return "", err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}

	access, err := s.codec.Encode(user.ID, token.ClassAccess, s.accessTTL)
	if err != nil {
		return "", err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("access token refreshed")
	return access, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/servicelink/admin-service/internal/auth"
	"github.com/servicelink/admin-service/internal/config"
	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/repository"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

// AuthService issues tokens for admin sessions.
type AuthService struct {
	accounts repository.AccountRepository
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, accounts repository.AccountRepository) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// Login authenticates an active admin account. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.UserSummary, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if !auth.PasswordMatches(account.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if account.Role != domain.RoleAdmin {
		return nil, "", time.Time{}, apperrors.NewForbidden("admin access required")
	}
	if !account.IsActive {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("account is inactive")
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	summary := account.Summary()
	return &summary, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

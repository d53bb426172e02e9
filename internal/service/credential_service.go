package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/servicelink/admin-service/internal/auth"
	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/events"
	"github.com/servicelink/admin-service/internal/observability"
	"github.com/servicelink/admin-service/internal/repository"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

const (
	titlePasswordChanged = "Password Changed"
	msgPasswordChanged   = "Your password has been changed by an administrator. If you did not request this change, please contact support immediately."
)

// CredentialService administers account passwords and admin accounts.
type CredentialService struct {
	accounts repository.AccountRepository
	hasher   auth.PasswordHasher
	metrics  *observability.Metrics
	logger   *zap.Logger
	events   publisher
}

// CredentialDependencies bundles collaborators for CredentialService.
type CredentialDependencies struct {
	Accounts   repository.AccountRepository
	Dispatcher events.Dispatcher
	BcryptCost int
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// CreateAdminInput describes a new admin account.
type CreateAdminInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

// NewCredentialService constructs the service.
func NewCredentialService(deps CredentialDependencies) *CredentialService {
	logger := orNop(deps.Logger)
	return &CredentialService{
		accounts: deps.Accounts,
		hasher:   auth.NewPasswordHasher(deps.BcryptCost),
		metrics:  deps.Metrics,
		logger:   logger,
		events:   publisher{dispatcher: deps.Dispatcher, logger: logger, metrics: deps.Metrics},
	}
}

// SetPassword overwrites the password of the account registered under email.
// It is a bootstrap operation and does not notify the owner.
func (s *CredentialService) SetPassword(ctx context.Context, email, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	email = normalizeEmail(email)
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return mapStoreError(err, "user", map[string]any{"email": email})
	}
	return s.overwrite(ctx, account.ID, newPassword)
}

// ChangeUserPassword lets an admin reset another user's password. The caller
// must be an ADMIN both by token and in the store.
func (s *CredentialService) ChangeUserPassword(ctx context.Context, caller domain.Caller, userID, newPassword string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	admin, err := s.accounts.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthorized("admin account not found")
		}
		return apperrors.NewInternalError(err)
	}
	if admin.Role != domain.RoleAdmin {
		return apperrors.NewUnauthorized("admin role required")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	target, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return mapStoreError(err, "user", map[string]any{"user_id": userID})
	}
	if err := s.overwrite(ctx, target.ID, newPassword); err != nil {
		return err
	}

	s.metrics.RecordTransition("password_changed")
	s.logger.Info("password changed by admin",
		zap.String("user_id", target.ID),
		zap.String("admin_id", caller.ID))
	s.events.publish(ctx, caller, events.Event{
		Type:         events.EventPasswordChanged,
		AccountID:    target.ID,
		Notification: generalNotification(target.ID, titlePasswordChanged, msgPasswordChanged),
		Payload:      events.PasswordChangedPayload{ChangedBy: caller.ID},
	})
	return nil
}

// CreateAdminUser registers an active, verified ADMIN account.
func (s *CredentialService) CreateAdminUser(ctx context.Context, input CreateAdminInput) (*domain.UserSummary, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, apperrors.NewValidationError("email is required", map[string]any{"field": "email"})
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user already exists", map[string]any{"email": email})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        input.Phone,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		IsVerified:   true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, mapStoreError(err, "user", map[string]any{"email": email})
	}

	s.logger.Info("admin account created", zap.String("user_id", account.ID))
	summary := account.Summary()
	return &summary, nil
}

func (s *CredentialService) overwrite(ctx context.Context, userID, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.accounts.SetPasswordHash(ctx, userID, hash); err != nil {
		return mapStoreError(err, "user", map[string]any{"user_id": userID})
	}
	return nil
}

func validatePassword(password string) error {
	if err := auth.CheckPolicy(password); err != nil {
		return apperrors.NewValidationError(err.Error(), map[string]any{"field": "password"})
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

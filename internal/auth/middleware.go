package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/repository"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Account *domain.Account
}

// Caller returns the identity passed to state-changing operations. The role
// comes from the store, not from the token.
func (p *Principal) Caller() domain.Caller {
	if p == nil || p.Account == nil {
		return domain.Caller{}
	}
	return domain.Caller{ID: p.Account.ID, Role: p.Account.Role}
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	accounts repository.AccountRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, accounts repository.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, accounts: accounts}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if errors.Is(err, ErrTokenExpired) {
		return apperrors.NewUnauthorized("token expired")
	}
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	account, err := m.accounts.GetByID(c.UserContext(), claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}
	if !account.IsActive {
		return apperrors.NewUnauthorized("account is inactive")
	}

	c.Locals(principalKey, &Principal{Account: account})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// CallerFromContext returns the authenticated caller, or a zero Caller that
// fails every role check.
func CallerFromContext(c *fiber.Ctx) domain.Caller {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		return domain.Caller{}
	}
	return principal.Caller()
}

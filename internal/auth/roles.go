package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servicelink/admin-service/internal/domain"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Account == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[principal.Account.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

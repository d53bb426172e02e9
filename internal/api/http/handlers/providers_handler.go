package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servicelink/admin-service/internal/api/dto"
	"github.com/servicelink/admin-service/internal/auth"
	"github.com/servicelink/admin-service/internal/service"
)

// ProvidersHandler serves provider listings and lifecycle transitions.
type ProvidersHandler struct {
	lifecycle *service.LifecycleService
	queries   *service.AdminQueryService
}

// NewProvidersHandler constructs handler.
func NewProvidersHandler(lifecycle *service.LifecycleService, queries *service.AdminQueryService) *ProvidersHandler {
	return &ProvidersHandler{lifecycle: lifecycle, queries: queries}
}

// List handles GET /admin/providers.
func (h *ProvidersHandler) List(c *fiber.Ctx) error {
	providers, err := h.queries.ListProvidersWithStatus(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": providers})
}

// ListActive handles GET /admin/providers/active.
func (h *ProvidersHandler) ListActive(c *fiber.Ctx) error {
	providers, err := h.queries.ListActiveProviders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": providers})
}

// ListUnverified handles GET /admin/providers/unverified.
func (h *ProvidersHandler) ListUnverified(c *fiber.Ctx) error {
	providers, err := h.queries.ListUnverifiedProviders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": providers})
}

// Details handles GET /admin/providers/:providerId/details.
func (h *ProvidersHandler) Details(c *fiber.Ctx) error {
	provider, err := h.queries.GetProviderDetails(c.UserContext(), c.Params("providerId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": provider})
}

// Verify handles POST /admin/providers/verify.
func (h *ProvidersHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyProviderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	provider, err := h.lifecycle.VerifyProviderAccount(c.UserContext(), auth.CallerFromContext(c), req.ProviderID, req.DocumentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": provider})
}

// Reject handles POST /admin/providers/reject.
func (h *ProvidersHandler) Reject(c *fiber.Ctx) error {
	var req dto.RejectProviderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	provider, err := h.lifecycle.RejectProviderVerification(c.UserContext(), auth.CallerFromContext(c), req.ProviderID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": provider})
}

// ToggleStatus handles POST /admin/providers/:providerId/toggle-status.
func (h *ProvidersHandler) ToggleStatus(c *fiber.Ctx) error {
	var req dto.ToggleStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	provider, err := h.lifecycle.ToggleProviderStatus(c.UserContext(), auth.CallerFromContext(c), c.Params("providerId"), *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": provider})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servicelink/admin-service/internal/api/dto"
	"github.com/servicelink/admin-service/internal/auth"
	"github.com/servicelink/admin-service/internal/service"
)

// ClientsHandler serves client listings and activation toggles.
type ClientsHandler struct {
	lifecycle *service.LifecycleService
	queries   *service.AdminQueryService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(lifecycle *service.LifecycleService, queries *service.AdminQueryService) *ClientsHandler {
	return &ClientsHandler{lifecycle: lifecycle, queries: queries}
}

// List handles GET /admin/clients.
func (h *ClientsHandler) List(c *fiber.Ctx) error {
	clients, err := h.queries.ListClients(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clients})
}

// ToggleStatus handles POST /admin/clients/:clientId/toggle-status.
func (h *ClientsHandler) ToggleStatus(c *fiber.Ctx) error {
	var req dto.ToggleStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	client, err := h.lifecycle.ToggleClientStatus(c.UserContext(), auth.CallerFromContext(c), c.Params("clientId"), *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": client})
}

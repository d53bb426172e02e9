package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servicelink/admin-service/internal/service"
)

// DashboardHandler serves admin dashboard aggregates.
type DashboardHandler struct {
	queries *service.AdminQueryService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(queries *service.AdminQueryService) *DashboardHandler {
	return &DashboardHandler{queries: queries}
}

// Stats handles GET /admin/dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.queries.DashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// RecentBookings handles GET /admin/dashboard/recent-bookings.
func (h *DashboardHandler) RecentBookings(c *fiber.Ctx) error {
	bookings, err := h.queries.RecentBookings(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookings})
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Phoneshop-api/internal/application/visibility"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// DashboardHandler métricas del día según el rol.
type DashboardHandler struct {
	uc  *visibility.UseCase
	log *logger.Logger
}

func NewDashboardHandler(uc *visibility.UseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Get devuelve el resumen del día calendario del local.
// GET /api/dashboard
//
// profit_today solo para owner; per_staff para owner y manager. Staff recibe
// únicamente lo que puede ver.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

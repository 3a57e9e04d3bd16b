package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

type AuditHandler struct {
	uc  *audit.UseCase
	log *logger.Logger
}

func NewAuditHandler(uc *audit.UseCase, log *logger.Logger) *AuditHandler {
	return &AuditHandler{uc: uc, log: log}
}

// List GET /api/audit?entity_type=&entity_id=&actor_id=&action=&since=&cursor=&size=
// Devuelve next_cursor mientras queden eventos más antiguos.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var in dto.AuditListRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

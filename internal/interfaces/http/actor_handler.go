package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Phoneshop-api/internal/application/actors"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// ActorHandler administración de cuentas del personal (solo owner).
type ActorHandler struct {
	uc  *actors.ActorUseCase
	log *logger.Logger
}

func NewActorHandler(uc *actors.ActorUseCase, log *logger.Logger) *ActorHandler {
	return &ActorHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear cuenta de personal
// @Tags         actors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateActorRequest  true  "username, name, password, role"
// @Success      201   {object}  dto.ActorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/actors [post]
func (h *ActorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateActorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/actors?limit=&offset=
func (h *ActorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.Context(), GetActor(c), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Deactivate POST /api/actors/:id/deactivate
func (h *ActorHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.Deactivate(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Reactivate POST /api/actors/:id/reactivate
func (h *ActorHandler) Reactivate(c *fiber.Ctx) error {
	out, err := h.uc.Reactivate(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

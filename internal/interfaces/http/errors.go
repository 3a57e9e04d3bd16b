package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// errorStatus traduce un error de dominio a código HTTP y código de error de la API.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError escribe el ErrorResponse. Los 5xx se registran y no exponen la causa.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := errorStatus(err)
	body := dto.ErrorResponse{Code: code, Message: err.Error()}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		body.Message = domain.ErrValidation.Error()
		body.Fields = ve.Fields
	}
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("actor_id", GetActorID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg("request failed")
		switch status {
		case fiber.StatusServiceUnavailable:
			body.Message = domain.ErrStoreUnavailable.Error()
		default:
			body.Message = "error interno"
		}
	}
	return c.Status(status).JSON(body)
}

// ErrorHandler para fiber.Config: rutas inexistentes, cuerpos demasiado grandes,
// pánicos recuperados y errores no manejados por los handlers.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "HTTP_ERROR"
			switch fe.Code {
			case fiber.StatusNotFound:
				code = "NOT_FOUND"
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			case fiber.StatusRequestEntityTooLarge:
				code = "BODY_TOO_LARGE"
			}
			if fe.Code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
		return respondError(c, log, err)
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
}

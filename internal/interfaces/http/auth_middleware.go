package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/pkg/jwt"
)

// Locals keys del actor autenticado en Fiber.
const (
	LocalActor   = "actor"
	LocalActorID = "actor_id"
	LocalRole    = "role"
)

// ActorResolver carga el actor vigente del token. Lo implementa *auth.AuthUseCase.
type ActorResolver interface {
	Authenticate(ctx context.Context, actorID string) (*entity.Actor, error)
}

// AuthMiddleware valida el Bearer Token y recarga el actor en cada petición,
// de modo que una cuenta desactivada pierde acceso aunque su token siga vigente.
// resolver nil deja solo los claims del token (actor sintético, útil en tests de rutas).
func AuthMiddleware(jwtSecret string, resolver ActorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if claims.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}

		actor := &entity.Actor{ID: claims.ActorID, Username: claims.Username, Role: domain.Role(claims.Role), Active: true}
		if resolver != nil {
			actor, err = resolver.Authenticate(c.Context(), claims.ActorID)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrForbidden):
					return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta desactivada"})
				case errors.Is(err, domain.ErrUnauthorized):
					return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "actor desconocido"})
				}
				return err
			}
		}

		c.Locals(LocalActor, actor)
		c.Locals(LocalActorID, actor.ID)
		c.Locals(LocalRole, string(actor.Role))
		return c.Next()
	}
}

// GetActor devuelve el actor autenticado (nil antes del middleware).
func GetActor(c *fiber.Ctx) *entity.Actor {
	a, _ := c.Locals(LocalActor).(*entity.Actor)
	return a
}

// GetActorID devuelve el id del actor autenticado.
func GetActorID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalActorID).(string)
	return s
}

// GetRole devuelve el rol vigente del actor autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// RequireCapability permite el paso solo si el rol vigente cumple el predicado
// (domain.CanManageActors, domain.CanAssignWork). Va después de AuthMiddleware.
func RequireCapability(can func(domain.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "rol no encontrado en el contexto"})
		}
		if !can(domain.Role(role)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
		}
		return c.Next()
	}
}

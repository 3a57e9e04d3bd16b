package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Phoneshop-api/internal/application/actors"
	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/auth"
	"github.com/jhoicas/Phoneshop-api/internal/application/receipt"
	"github.com/jhoicas/Phoneshop-api/internal/application/visibility"
	"github.com/jhoicas/Phoneshop-api/internal/application/workflow"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ActorUC    *actors.ActorUseCase
	WorkflowUC *workflow.UseCase
	Visibility *visibility.UseCase
	AuditUC    *audit.UseCase
	ReceiptUC  *receipt.ReceiptUseCase
	Metrics    *metrics.Prometheus // nil = sin /metrics
	Ping       func(ctx context.Context) error
	JWTSecret  string
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Get("/health", healthHandler(deps.Ping))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas: token válido y actor activo.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/me", authHandler.Me)

	// Personal (solo owner)
	actorHandler := NewActorHandler(deps.ActorUC, log)
	staff := protected.Group("/actors", RequireCapability(domain.CanManageActors))
	staff.Get("/", actorHandler.List)
	staff.Post("/", actorHandler.Create)
	staff.Post("/:id/deactivate", actorHandler.Deactivate)
	staff.Post("/:id/reactivate", actorHandler.Reactivate)

	// Registros de negocio
	wf := NewWorkflowHandler(deps.WorkflowUC, deps.Visibility, deps.ReceiptUC, log)
	for _, t := range domain.NumberedTypes {
		wf.Register(protected, t)
	}

	protected.Get("/dashboard", NewDashboardHandler(deps.Visibility, log).Get)

	auditHandler := NewAuditHandler(deps.AuditUC, log)
	protected.Get("/audit", RequireCapability(domain.CanManageActors), auditHandler.List)
}

// healthHandler GET /health. Con ping configurado verifica el almacenamiento.
func healthHandler(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "store": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

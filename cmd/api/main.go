package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Phoneshop-api/internal/application/actors"
	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/auth"
	"github.com/jhoicas/Phoneshop-api/internal/application/receipt"
	"github.com/jhoicas/Phoneshop-api/internal/application/visibility"
	"github.com/jhoicas/Phoneshop-api/internal/application/workflow"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Phoneshop-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Phoneshop-api/internal/interfaces/http"
	"github.com/jhoicas/Phoneshop-api/pkg/clock"
	"github.com/jhoicas/Phoneshop-api/pkg/config"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("aplicación finalizada con error")
		os.Exit(1)
	}
}

// run arma y sirve la aplicación hasta recibir SIGINT/SIGTERM.
// Los recursos abiertos se liberan antes de volver, también en error.
func run(cfg *config.Config, log *logger.Logger) error {
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	loc, err := cfg.Shop.Location()
	if err != nil {
		return fmt.Errorf("zona horaria del local: %w", err)
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, storage.Options{Migrate: true}, log.Component("storage"))
	if err != nil {
		return fmt.Errorf("almacenamiento: %w", err)
	}
	defer backend.Close()

	clk := clock.System{Location: loc}
	prom := metrics.NewPrometheus()
	recorder := audit.NewRecorder(prom)
	hasher := auth.BcryptHasher{}
	tokens := auth.JWTIssuer{Config: auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}}

	authUC := auth.NewAuthUseCase(backend.Store, backend.Tx, hasher, tokens, recorder, clk, log.Component("auth"))
	actorUC := actors.NewActorUseCase(backend.Store, backend.Tx, hasher, recorder, clk, log.Component("actors"))
	workflowUC := workflow.NewUseCase(backend.Tx, recorder, clk, prom, log.Component("workflow"))
	visibilityUC := visibility.NewUseCase(backend.Store, clk, loc, log.Component("visibility"))
	auditUC := audit.NewUseCase(backend.Store, cfg.Audit.DefaultPageSize, cfg.Audit.MaxPageSize)
	receiptUC := receipt.NewReceiptUseCase(backend.Store, infrapdf.NewReceiptRenderer(cfg.Shop.Name, loc))

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.DocsFile != "" {
		if err := httpRouter.Docs(app, cfg.HTTP.DocsFile, "Phoneshop API"); err != nil {
			log.Warn().Err(err).Msg("Swagger UI deshabilitado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ActorUC:    actorUC,
		WorkflowUC: workflowUC,
		Visibility: visibilityUC,
		AuditUC:    auditUC,
		ReceiptUC:  receiptUC,
		Metrics:    prom,
		Ping:       backend.Ping,
		JWTSecret:  cfg.JWT.Secret,
		Log:        httpLog,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}

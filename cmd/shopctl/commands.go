package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Phoneshop-api/internal/application/actors"
	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/auth"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/storage"
	"github.com/jhoicas/Phoneshop-api/pkg/clock"
	"github.com/jhoicas/Phoneshop-api/pkg/config"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

func migrateCmd() *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema PostgreSQL (idempotente)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printOnly {
				_, err := fmt.Fprint(cmd.OutOrStdout(), postgres.Schema())
				return err
			}
			cfg, log, err := load()
			if err != nil {
				return err
			}
			if cfg.Store.Driver != config.StorePostgres {
				return fmt.Errorf("migrate requiere STORE_DRIVER=%s", config.StorePostgres)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			b, err := storage.Open(ctx, cfg, storage.Options{Migrate: true}, log)
			if err != nil {
				return err
			}
			b.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "esquema aplicado")
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Imprime el SQL sin conectarse")
	return cmd
}

func createOwnerCmd() *cobra.Command {
	var username, name, password string
	cmd := &cobra.Command{
		Use:   "create-owner",
		Short: "Crea el primer owner (falla si ya existen cuentas)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("SHOPCTL_PASSWORD")
			}
			cfg, log, err := load()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			b, err := storage.Open(ctx, cfg, storage.Options{Migrate: true}, log)
			if err != nil {
				return err
			}
			defer b.Close()

			out, err := bootstrapOwner(ctx, b, log, dto.CreateActorRequest{
				Username: username,
				Name:     name,
				Password: password,
			})
			if errors.Is(err, domain.ErrConflict) {
				return fmt.Errorf("ya existen cuentas; cree nuevas desde la API con un owner")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "owner %s creado (id %s)\n", out.Username, out.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Usuario de acceso")
	cmd.Flags().StringVar(&name, "name", "", "Nombre visible")
	cmd.Flags().StringVar(&password, "password", "", "Contraseña (o SHOPCTL_PASSWORD)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// bootstrapOwner crea la primera cuenta con el mismo hasher y auditoría que la API.
func bootstrapOwner(ctx context.Context, b *storage.Backend, log *logger.Logger, in dto.CreateActorRequest) (*dto.ActorResponse, error) {
	uc := actors.NewActorUseCase(b.Store, b.Tx, auth.BcryptHasher{}, audit.NewRecorder(ports.NopMetrics{}), clock.System{}, log)
	return uc.Bootstrap(ctx, in)
}

func load() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
	return cfg, log.Component(appName), nil
}

// Package storage selecciona el adaptador de persistencia según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/memory"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Phoneshop-api/pkg/config"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// Backend Store de lectura, TxRunner para mutaciones y ciclo de vida de la conexión.
type Backend struct {
	Store  repository.Store
	Tx     ports.TxRunner
	Driver string
	Ping   func(ctx context.Context) error
	Close  func()
}

// Options de apertura.
type Options struct {
	Migrate bool // aplicar el esquema al conectar (solo postgres)
}

// Open construye el backend del driver configurado.
func Open(ctx context.Context, cfg *config.Config, opts Options, log *logger.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		st := memory.New()
		return &Backend{
			Store:  st,
			Tx:     st,
			Driver: config.StoreMemory,
			Ping:   func(context.Context) error { return nil },
			Close:  func() {},
		}, nil

	case config.StorePostgres, "":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("storage: conexión a PostgreSQL: %w", err)
		}
		if opts.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("storage: migración: %w", err)
			}
			log.Info().Msg("esquema aplicado")
		}
		return &Backend{
			Store:  postgres.NewStore(pool),
			Tx:     postgres.NewTxRunner(pool),
			Driver: config.StorePostgres,
			Ping:   pool.Ping,
			Close:  pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Store.Driver)
}

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	"github.com/jhoicas/Phoneshop-api/pkg/config"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}}

	b, err := Open(context.Background(), cfg, Options{}, logger.Nop())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.StoreMemory, b.Driver)
	assert.NoError(t, b.Ping(context.Background()))

	err = b.Tx.Run(context.Background(), func(s repository.Store) error {
		_, err := s.Sequences().Next(context.Background(), "trade_in")
		return err
	})
	assert.NoError(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}
	_, err := Open(context.Background(), cfg, Options{}, logger.Nop())
	assert.Error(t, err)
}

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/storage"
	"github.com/jhoicas/Phoneshop-api/pkg/config"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

func TestMigratePrint(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"migrate", "--print"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "CREATE TABLE IF NOT EXISTS audit_events")
}

func TestBootstrapOwner_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}}
	b, err := storage.Open(ctx, cfg, storage.Options{}, logger.Nop())
	require.NoError(t, err)

	in := dto.CreateActorRequest{Username: "owner", Name: "Dueña", Password: "supersecreto"}
	out, err := bootstrapOwner(ctx, b, logger.Nop(), in)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleOwner), out.Role)

	in.Username = "otro"
	_, err = bootstrapOwner(ctx, b, logger.Nop(), in)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

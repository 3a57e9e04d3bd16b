package main

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Phoneshop-api/pkg/config"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// Si el puerto está ocupado run devuelve el error (y cierra lo abierto) en lugar de terminar el proceso.
func TestRun_ListenErrorIsReturned(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := &config.Config{
		App:   config.AppConfig{Env: "development", Name: "phoneshop-test"},
		Store: config.StoreConfig{Driver: config.StoreMemory},
		HTTP:  config.HTTPConfig{Host: "127.0.0.1", Port: busy.Addr().(*net.TCPAddr).Port},
		Shop:  config.ShopConfig{Name: "Local", TimeZone: "UTC"},
		Audit: config.AuditConfig{DefaultPageSize: 50, MaxPageSize: 200},
	}

	err = run(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "servidor HTTP")
}

func TestRun_InvalidTimeZone(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.StoreMemory},
		Shop:  config.ShopConfig{TimeZone: "Marte/Olimpo"},
	}
	err := run(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zona horaria")
}

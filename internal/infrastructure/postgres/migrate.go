package postgres

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Migrate aplica el esquema (idempotente). Sin argumentos pgx usa el protocolo
// simple, que admite varias sentencias en un mismo Exec.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return mapError("migrate", err)
	}
	return nil
}

// Schema devuelve el SQL embebido (para `shopctl migrate --print`).
func Schema() string { return schemaSQL }

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/application/workflow"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Phoneshop-api/pkg/clock"
	"github.com/jhoicas/Phoneshop-api/pkg/config"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// Requiere una base vacía dedicada: PHONESHOP_TEST_DATABASE_URL=postgres://...
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("PHONESHOP_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PHONESHOP_TEST_DATABASE_URL no definida")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE audit_events, deliveries, sales, leads, repairs, trade_ins, actors CASCADE`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `UPDATE business_counters SET issued = 0`)
	require.NoError(t, err)
	return pool
}

func seedActor(t *testing.T, store *postgres.Store, role domain.Role) *entity.Actor {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	a := &entity.Actor{
		ID: uuid.NewString(), Username: "u-" + uuid.NewString()[:8], Name: string(role),
		PasswordHash: "x", Role: role, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.Actors().Create(context.Background(), a))
	return a
}

func TestPostgres_WorkflowEndToEnd(t *testing.T) {
	pool := openTestPool(t)
	store := postgres.NewStore(pool)
	uc := workflow.NewUseCase(postgres.NewTxRunner(pool), audit.NewRecorder(nil), clock.System{}, nil, logger.Nop())
	ctx := context.Background()

	staff := seedActor(t, store, domain.RoleStaff)
	manager := seedActor(t, store, domain.RoleManager)

	ti, err := uc.CreateTradeIn(ctx, staff, dto.CreateTradeInRequest{
		Brand: "Apple", Model: "iPhone 13", IMEI: "359999999999999", CustomerName: "Sara", BaseValue: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Equal(t, "TI-10001", ti.Number)

	_, err = uc.TransitionTradeIn(ctx, staff, ti.ID, dto.TransitionRequest{Status: "paid_out", PayoutMethod: "cash"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	approved, err := uc.TransitionTradeIn(ctx, manager, ti.ID, dto.TransitionRequest{Status: "approved"})
	require.NoError(t, err)
	require.NotNil(t, approved.FinalOffer)
	assert.True(t, decimal.NewFromInt(500).Equal(*approved.FinalOffer))

	n, err := store.Audit().CountFor(ctx, domain.EntityTradeIn, ti.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	exists, err := store.TradeIns().SerialExists(ctx, "359999999999999")
	require.NoError(t, err)
	assert.True(t, exists)

	visible, err := store.TradeIns().List(ctx, repository.ListFilter{VisibleTo: manager.ID})
	require.NoError(t, err)
	assert.Empty(t, visible, "el manager no es creador ni asignado")
}

func TestPostgres_ConcurrentNumbers(t *testing.T) {
	pool := openTestPool(t)
	store := postgres.NewStore(pool)
	uc := workflow.NewUseCase(postgres.NewTxRunner(pool), audit.NewRecorder(nil), clock.System{}, nil, logger.Nop())
	staff := seedActor(t, store, domain.RoleStaff)

	const n = 30
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := uc.CreateLead(context.Background(), staff, dto.CreateLeadRequest{CustomerName: fmt.Sprintf("c%d", i)})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[out.Number] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	assert.Len(t, seen, n)
	assert.True(t, seen[fmt.Sprintf("LD-%05d", 10000+n)])
}

func TestPostgres_AuditIsAppendOnly(t *testing.T) {
	pool := openTestPool(t)
	store := postgres.NewStore(pool)
	owner := seedActor(t, store, domain.RoleOwner)
	ctx := context.Background()

	require.NoError(t, store.Audit().Append(ctx, &entity.AuditEvent{
		ActorID: owner.ID, Action: entity.ActionLogin, EntityType: domain.EntityActor, EntityID: owner.ID, CreatedAt: time.Now(),
	}))
	_, err := pool.Exec(ctx, `DELETE FROM audit_events`)
	assert.Error(t, err)
	_, err = pool.Exec(ctx, `UPDATE audit_events SET action = 'x'`)
	assert.Error(t, err)
}

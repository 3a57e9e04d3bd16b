package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/memory"
)

var t0 = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

func actor(id, username string) *entity.Actor {
	return &entity.Actor{ID: id, Username: username, Name: username, PasswordHash: "x", Role: domain.RoleStaff, Active: true, CreatedAt: t0, UpdatedAt: t0}
}

func TestRun_RollbackDiscardsEverything(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.Run(ctx, func(s repository.Store) error {
		if _, err := s.Sequences().Next(ctx, domain.EntityRepair); err != nil {
			return err
		}
		if err := s.Actors().Create(ctx, actor("a1", "ana")); err != nil {
			return err
		}
		if err := s.Audit().Append(ctx, &entity.AuditEvent{ActorID: "a1", Action: "actor.created", CreatedAt: t0}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := st.Actors().GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Nil(t, got)

	events, err := st.Audit().List(ctx, repository.AuditFilter{}, 10)
	require.NoError(t, err)
	assert.Empty(t, events)

	issued, err := st.Sequences().Next(ctx, domain.EntityRepair)
	require.NoError(t, err)
	assert.Zero(t, issued, "el consecutivo reservado se liberó")
}

func TestRun_CommitPublishes(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	require.NoError(t, st.Run(ctx, func(s repository.Store) error {
		return s.Actors().Create(ctx, actor("a1", "ana"))
	}))
	got, err := st.Actors().GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a1", got.ID)

	err = st.Actors().Create(ctx, actor("a2", "ana"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRun_CancelledContext(t *testing.T) {
	st := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := st.Run(ctx, func(repository.Store) error { called = true; return nil })
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.False(t, called)
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	require.NoError(t, st.Actors().Create(ctx, actor("a1", "ana")))

	got, err := st.Actors().GetByID(ctx, "a1")
	require.NoError(t, err)
	got.Name = "cambiado"

	again, err := st.Actors().GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "ana", again.Name)
}

func TestAudit_KeysetOrder(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	for i, at := range []time.Time{t0, t0, t0.Add(time.Second)} {
		require.NoError(t, st.Audit().Append(ctx, &entity.AuditEvent{ActorID: "a", Action: "x", EntityID: string(rune('a' + i)), CreatedAt: at}))
	}

	all, err := st.Audit().List(ctx, repository.AuditFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].EntityID, all[1].EntityID, all[2].EntityID})

	older, err := st.Audit().List(ctx, repository.AuditFilter{Before: &repository.AuditKey{CreatedAt: all[1].CreatedAt, Seq: all[1].Seq}}, 10)
	require.NoError(t, err)
	require.Len(t, older, 1)
	assert.Equal(t, "a", older[0].EntityID)
}

func TestSequences_PerType(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	for i := int64(0); i < 3; i++ {
		n, err := st.Sequences().Next(ctx, domain.EntitySale)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	n, err := st.Sequences().Next(ctx, domain.EntityLead)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = st.Sequences().Next(ctx, domain.EntityActor)
	assert.Error(t, err)
}

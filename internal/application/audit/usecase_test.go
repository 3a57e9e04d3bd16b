package audit_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/memory"
)

var (
	at    = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	owner = &entity.Actor{ID: "owner-1", Role: domain.RoleOwner, Active: true}
	staff = &entity.Actor{ID: "staff-1", Role: domain.RoleStaff, Active: true}
)

type countingMetrics struct {
	actions []string
}

func (m *countingMetrics) EntityCreated(domain.EntityType)                 {}
func (m *countingMetrics) Transitioned(domain.EntityType, string, string)  {}
func (m *countingMetrics) TransitionRejected(domain.EntityType, string)    {}
func (m *countingMetrics) AuditRecorded(action string)                     { m.actions = append(m.actions, action) }

// record agrega n eventos con la misma marca de tiempo; el desempate es Seq.
func record(t *testing.T, st *memory.Store, rec *audit.Recorder, n int, when time.Time) {
	t.Helper()
	var events []*entity.AuditEvent
	err := st.Run(context.Background(), func(s repository.Store) error {
		for i := 0; i < n; i++ {
			ev, err := rec.Record(context.Background(), s, audit.Entry{
				ActorID:    owner.ID,
				Action:     "repair.created",
				EntityType: domain.EntityRepair,
				EntityID:   fmt.Sprintf("r-%d", i),
				At:         when,
			})
			if err != nil {
				return err
			}
			events = append(events, ev)
		}
		return nil
	})
	require.NoError(t, err)
	rec.Committed(events...)
}

func TestRecorder_RejectsAnonymousEvents(t *testing.T) {
	st := memory.New()
	rec := audit.NewRecorder(nil)
	_, err := rec.Record(context.Background(), st, audit.Entry{Action: "repair.created", At: at})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecorder_CommittedReportsMetrics(t *testing.T) {
	st := memory.New()
	m := &countingMetrics{}
	record(t, st, audit.NewRecorder(m), 3, at)
	assert.Equal(t, []string{"repair.created", "repair.created", "repair.created"}, m.actions)
}

func TestList_OwnerOnly(t *testing.T) {
	uc := audit.NewUseCase(memory.New(), 0, 0)

	_, err := uc.List(context.Background(), staff, dto.AuditListRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.List(context.Background(), nil, dto.AuditListRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	out, err := uc.List(context.Background(), owner, dto.AuditListRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Empty(t, out.NextCursor)
}

func TestList_KeysetPaginationIsStable(t *testing.T) {
	st := memory.New()
	rec := audit.NewRecorder(nil)
	record(t, st, rec, 5, at)
	uc := audit.NewUseCase(st, 2, 10)
	ctx := context.Background()

	first, err := uc.List(ctx, owner, dto.AuditListRequest{})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)
	assert.Equal(t, "r-4", first.Items[0].EntityID, "más reciente primero")

	// eventos nuevos no desplazan las páginas siguientes
	record(t, st, rec, 3, at.Add(time.Minute))

	var seen []string
	for _, it := range first.Items {
		seen = append(seen, it.EntityID)
	}
	cursor := first.NextCursor
	for cursor != "" {
		page, err := uc.List(ctx, owner, dto.AuditListRequest{Cursor: cursor})
		require.NoError(t, err)
		for _, it := range page.Items {
			seen = append(seen, it.EntityID)
		}
		cursor = page.NextCursor
	}
	assert.Equal(t, []string{"r-4", "r-3", "r-2", "r-1", "r-0"}, seen)
}

func TestList_Filters(t *testing.T) {
	st := memory.New()
	rec := audit.NewRecorder(nil)
	record(t, st, rec, 3, at)
	record(t, st, rec, 2, at.Add(time.Hour))
	uc := audit.NewUseCase(st, 0, 0)
	ctx := context.Background()

	byEntity, err := uc.List(ctx, owner, dto.AuditListRequest{EntityType: "repair", EntityID: "r-1"})
	require.NoError(t, err)
	assert.Len(t, byEntity.Items, 2)

	since, err := uc.List(ctx, owner, dto.AuditListRequest{Since: at.Add(30 * time.Minute).Format(time.RFC3339)})
	require.NoError(t, err)
	assert.Len(t, since.Items, 2)

	_, err = uc.List(ctx, owner, dto.AuditListRequest{EntityType: "invoice"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.List(ctx, owner, dto.AuditListRequest{Cursor: "%%%"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestList_SizeIsCapped(t *testing.T) {
	st := memory.New()
	record(t, st, audit.NewRecorder(nil), 6, at)
	uc := audit.NewUseCase(st, 2, 4)

	out, err := uc.List(context.Background(), owner, dto.AuditListRequest{Size: 100})
	require.NoError(t, err)
	assert.Len(t, out.Items, 4)
	assert.NotEmpty(t, out.NextCursor)
}

func TestCursor_RoundTrip(t *testing.T) {
	key := repository.AuditKey{CreatedAt: at.Add(123 * time.Nanosecond), Seq: 42}
	got, err := audit.DecodeCursor(audit.EncodeCursor(key))
	require.NoError(t, err)
	assert.True(t, key.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, key.Seq, got.Seq)

	for _, bad := range []string{"", "bm9wZQ", "MTIzLi0x"} {
		_, err := audit.DecodeCursor(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

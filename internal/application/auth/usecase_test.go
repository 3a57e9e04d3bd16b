package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/auth"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/application/ports/mocks"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/memory"
	"github.com/jhoicas/Phoneshop-api/pkg/clock"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

var now = time.Date(2026, 5, 4, 8, 30, 0, 0, time.UTC)

func seed(t *testing.T, st *memory.Store, active bool) *entity.Actor {
	t.Helper()
	a := &entity.Actor{
		ID: "actor-1", Username: "maria", Name: "María", PasswordHash: "hash-maria",
		Role: domain.RoleManager, Active: active, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Actors().Create(context.Background(), a))
	return a
}

func TestAuthUseCase_Login(t *testing.T) {
	tests := []struct {
		name      string
		active    bool
		input     dto.LoginRequest
		setupMock func(h *mocks.MockPasswordHasher, ti *mocks.MockTokenIssuer)
		wantErr   error
		audited   bool
	}{
		{
			name:   "credenciales válidas",
			active: true,
			input:  dto.LoginRequest{Username: "maria", Password: "secreta123"},
			setupMock: func(h *mocks.MockPasswordHasher, ti *mocks.MockTokenIssuer) {
				h.EXPECT().Compare("hash-maria", "secreta123").Return(nil)
				ti.EXPECT().Issue(gomock.Any()).Return("tok", now.Add(time.Hour), nil)
			},
			audited: true,
		},
		{
			name:   "usuario inexistente",
			active: true,
			input:  dto.LoginRequest{Username: "nadie", Password: "x"},
			setupMock: func(h *mocks.MockPasswordHasher, ti *mocks.MockTokenIssuer) {
				// se verifica igual contra un hash de referencia
				h.EXPECT().Hash(gomock.Any()).Return("hash-referencia", nil)
				h.EXPECT().Compare("hash-referencia", "x").Return(errors.New("mismatch"))
			},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:   "password incorrecto",
			active: true,
			input:  dto.LoginRequest{Username: "maria", Password: "mala"},
			setupMock: func(h *mocks.MockPasswordHasher, ti *mocks.MockTokenIssuer) {
				h.EXPECT().Compare("hash-maria", "mala").Return(errors.New("mismatch"))
			},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:   "cuenta desactivada",
			active: false,
			input:  dto.LoginRequest{Username: "maria", Password: "secreta123"},
			setupMock: func(h *mocks.MockPasswordHasher, ti *mocks.MockTokenIssuer) {
				h.EXPECT().Compare("hash-maria", "secreta123").Return(nil)
			},
			wantErr: domain.ErrForbidden,
		},
		{
			name:   "campos vacíos",
			active: true,
			input:  dto.LoginRequest{},
			setupMock: func(h *mocks.MockPasswordHasher, ti *mocks.MockTokenIssuer) {
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			hasher := mocks.NewMockPasswordHasher(ctrl)
			issuer := mocks.NewMockTokenIssuer(ctrl)
			tt.setupMock(hasher, issuer)

			st := memory.New()
			a := seed(t, st, tt.active)
			uc := auth.NewAuthUseCase(st, st, hasher, issuer, audit.NewRecorder(nil), clock.NewFixed(now), logger.Nop())

			out, err := uc.Login(context.Background(), tt.input)
			n, cerr := st.Audit().CountFor(context.Background(), domain.EntityActor, a.ID)
			require.NoError(t, cerr)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)
				assert.Zero(t, n, "los intentos fallidos no se auditan")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "tok", out.Token)
			assert.Equal(t, a.ID, out.Actor.ID)
			assert.Equal(t, "manager", out.Actor.Role)
			assert.Equal(t, 1, n)
		})
	}
}

func TestAuthUseCase_LoginUnknownUserStillVerifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockPasswordHasher(ctrl)
	hasher.EXPECT().Hash(gomock.Any()).Return("hash-referencia", nil).Times(1)
	hasher.EXPECT().Compare("hash-referencia", gomock.Any()).Return(errors.New("mismatch")).Times(2)

	st := memory.New()
	seed(t, st, true)
	uc := auth.NewAuthUseCase(st, st, hasher, nil, audit.NewRecorder(nil), clock.NewFixed(now), logger.Nop())

	for _, u := range []string{"nadie", "otro"} {
		_, err := uc.Login(context.Background(), dto.LoginRequest{Username: u, Password: "secreta123"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
}

func TestAuthUseCase_Authenticate(t *testing.T) {
	st := memory.New()
	a := seed(t, st, true)
	uc := auth.NewAuthUseCase(st, st, nil, nil, audit.NewRecorder(nil), clock.NewFixed(now), logger.Nop())
	ctx := context.Background()

	got, err := uc.Authenticate(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, got.Role)

	_, err = uc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Authenticate(ctx, "fantasma")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// el rol y el estado se releen en cada petición
	require.NoError(t, st.Actors().SetActive(ctx, a.ID, false, now))
	_, err = uc.Authenticate(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthUseCase_LogoutIsAudited(t *testing.T) {
	ctrl := gomock.NewController(t)
	tx := mocks.NewMockTxRunner(ctrl)
	st := memory.New()
	a := seed(t, st, true)

	tx.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(repository.Store) error) error { return st.Run(ctx, fn) },
	)
	uc := auth.NewAuthUseCase(st, tx, nil, nil, audit.NewRecorder(nil), clock.NewFixed(now), logger.Nop())

	require.NoError(t, uc.Logout(context.Background(), a))

	events, err := st.Audit().List(context.Background(), repository.AuditFilter{ActorID: a.ID}, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entity.ActionLogout, events[0].Action)
}

func TestAuthUseCase_LoginFailsWhenAuditUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockPasswordHasher(ctrl)
	issuer := mocks.NewMockTokenIssuer(ctrl)
	tx := mocks.NewMockTxRunner(ctrl)
	st := memory.New()
	seed(t, st, true)

	hasher.EXPECT().Compare(gomock.Any(), gomock.Any()).Return(nil)
	issuer.EXPECT().Issue(gomock.Any()).Return("tok", now, nil)
	tx.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.Unavailable("begin", errors.New("conn refused")))

	uc := auth.NewAuthUseCase(st, tx, hasher, issuer, audit.NewRecorder(nil), clock.NewFixed(now), logger.Nop())
	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Nil(t, out)
}

func TestBcryptHasher(t *testing.T) {
	h := auth.BcryptHasher{Cost: 4}
	hash, err := h.Hash("secreta123")
	require.NoError(t, err)
	assert.NotEqual(t, "secreta123", hash)
	assert.NoError(t, h.Compare(hash, "secreta123"))
	assert.Error(t, h.Compare(hash, "otra"))
}

package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	"github.com/jhoicas/Phoneshop-api/pkg/clock"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// AuthUseCase casos de uso de autenticación: login, logout y resolución del actor de cada petición.
type AuthUseCase struct {
	store    repository.Store
	tx       ports.TxRunner
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	recorder *audit.Recorder
	clock    clock.Clock
	log      *logger.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	store repository.Store,
	tx ports.TxRunner,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	recorder *audit.Recorder,
	clk clock.Clock,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{store: store, tx: tx, hasher: hasher, tokens: tokens, recorder: recorder, clock: clk, log: log}
}

// Login verifica credenciales, emite el JWT y audita el acceso.
// Los intentos fallidos devuelven ErrUnauthorized y no se auditan contra ningún actor.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	actor, err := uc.store.Actors().GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if actor == nil {
		// Mismo costo de verificación que con un usuario existente.
		_ = uc.hasher.Compare(uc.dummy(), in.Password)
		return nil, domain.ErrUnauthorized
	}
	if err := uc.hasher.Compare(actor.PasswordHash, in.Password); err != nil {
		uc.log.Debug().Str("username", actor.Username).Msg("login: credenciales inválidas")
		return nil, domain.ErrUnauthorized
	}
	if !actor.Active {
		return nil, domain.ErrForbidden
	}
	token, exp, err := uc.tokens.Issue(actor)
	if err != nil {
		return nil, err
	}

	var ev *entity.AuditEvent
	err = uc.tx.Run(ctx, func(s repository.Store) error {
		var rerr error
		ev, rerr = uc.recorder.Record(ctx, s, audit.Entry{
			ActorID:    actor.ID,
			Action:     entity.ActionLogin,
			EntityType: domain.EntityActor,
			EntityID:   actor.ID,
			At:         uc.clock.Now(),
		})
		return rerr
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Committed(ev)
	uc.log.Info().Str("actor_id", actor.ID).Str("role", string(actor.Role)).Msg("login")

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		Actor:     dto.ActorFromEntity(actor),
	}, nil
}

// Logout audita el cierre de sesión. El token es stateless: el cliente lo descarta.
func (uc *AuthUseCase) Logout(ctx context.Context, actor *entity.Actor) error {
	if err := actor.EnsureActive(); err != nil {
		return err
	}
	var ev *entity.AuditEvent
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		var rerr error
		ev, rerr = uc.recorder.Record(ctx, s, audit.Entry{
			ActorID:    actor.ID,
			Action:     entity.ActionLogout,
			EntityType: domain.EntityActor,
			EntityID:   actor.ID,
			At:         uc.clock.Now(),
		})
		return rerr
	})
	if err != nil {
		return err
	}
	uc.recorder.Committed(ev)
	return nil
}

// Authenticate carga el actor de un token ya verificado.
// Devuelve ErrUnauthorized si el actor no existe y ErrForbidden si está desactivado.
func (uc *AuthUseCase) Authenticate(ctx context.Context, actorID string) (*entity.Actor, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	actor, err := uc.store.Actors().GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	return actor, nil
}

// dummy hash de referencia para usernames inexistentes, calculado una vez con el hasher configurado.
func (uc *AuthUseCase) dummy() string {
	uc.dummyOnce.Do(func() {
		if h, err := uc.hasher.Hash("phoneshop-unknown-user"); err == nil {
			uc.dummyHash = h
		}
	})
	return uc.dummyHash
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var _ repository.ActorRepository = (*ActorRepo)(nil)

const actorColumns = `id, username, name, password_hash, role, active, created_at, updated_at`

// ActorRepo implementación del puerto ActorRepository sobre PostgreSQL.
type ActorRepo struct {
	q Querier
}

// NewActorRepository construye el adaptador de persistencia para actores.
func NewActorRepository(q Querier) *ActorRepo {
	return &ActorRepo{q: q}
}

// Create persiste un nuevo actor. Username duplicado -> domain.ErrConflict.
func (r *ActorRepo) Create(ctx context.Context, a *entity.Actor) error {
	query := `INSERT INTO actors (` + actorColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Username, a.Name, a.PasswordHash, string(a.Role), a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q ya existe: %w", a.Username, domain.ErrConflict)
		}
		return mapError("insert actor", err)
	}
	return nil
}

// GetByID obtiene un actor por ID (nil, nil si no existe).
func (r *ActorRepo) GetByID(ctx context.Context, id string) (*entity.Actor, error) {
	return r.getOne(ctx, `SELECT `+actorColumns+` FROM actors WHERE id = $1`, id)
}

// GetByUsername obtiene un actor por username (nil, nil si no existe).
func (r *ActorRepo) GetByUsername(ctx context.Context, username string) (*entity.Actor, error) {
	return r.getOne(ctx, `SELECT `+actorColumns+` FROM actors WHERE username = $1`, username)
}

func (r *ActorRepo) getOne(ctx context.Context, query string, arg any) (*entity.Actor, error) {
	a, err := scanActor(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get actor", err)
	}
	return a, nil
}

// SetActive alterna la activación del actor.
func (r *ActorRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE actors SET active = $2, updated_at = $3 WHERE id = $1`, id, active, at)
	if err != nil {
		return mapError("update actor", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista actores por fecha de alta.
func (r *ActorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Actor, error) {
	w := &where{}
	query := `SELECT ` + actorColumns + ` FROM actors` + w.page("created_at ASC, username ASC", limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list actors", err)
	}
	defer rows.Close()

	var list []*entity.Actor
	for rows.Next() {
		a, err := scanActor(rows)
		if err != nil {
			return nil, mapError("scan actor", err)
		}
		list = append(list, a)
	}
	return list, mapError("list actors", rows.Err())
}

// Count total de actores registrados.
func (r *ActorRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM actors`).Scan(&n); err != nil {
		return 0, mapError("count actors", err)
	}
	return n, nil
}

func scanActor(row pgx.Row) (*entity.Actor, error) {
	var (
		a    entity.Actor
		role string
	)
	if err := row.Scan(&a.ID, &a.Username, &a.Name, &a.PasswordHash, &role, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Role = domain.Role(role)
	return &a, nil
}

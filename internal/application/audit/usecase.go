package audit

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

// Límites por defecto si no se configuran.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// UseCase consulta del registro de auditoría (solo owner).
type UseCase struct {
	store       repository.Store
	defaultSize int
	maxSize     int
}

// NewUseCase construye el caso de uso. Tamaños <= 0 toman los valores por defecto.
func NewUseCase(store repository.Store, defaultSize, maxSize int) *UseCase {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize < defaultSize {
		maxSize = MaxPageSize
		if maxSize < defaultSize {
			maxSize = defaultSize
		}
	}
	return &UseCase{store: store, defaultSize: defaultSize, maxSize: maxSize}
}

// List devuelve una página de eventos del más reciente al más antiguo.
// La paginación es por llave (created_at, id): eventos agregados mientras se
// pagina nunca desplazan ni duplican filas de páginas siguientes.
func (uc *UseCase) List(ctx context.Context, actor *entity.Actor, in dto.AuditListRequest) (*dto.AuditPageResponse, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, err
	}
	if !domain.CanManageActors(actor.Role) {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	filter := repository.AuditFilter{
		EntityType: domain.EntityType(in.EntityType),
		EntityID:   strings.TrimSpace(in.EntityID),
		ActorID:    strings.TrimSpace(in.ActorID),
		Action:     strings.TrimSpace(in.Action),
	}
	if in.Since != "" {
		since, err := time.Parse(time.RFC3339, in.Since)
		if err != nil {
			return nil, domain.NewValidationError("since", "fecha RFC 3339 inválida")
		}
		filter.Since = &since
	}
	if in.Cursor != "" {
		key, err := DecodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
		filter.Before = &key
	}

	size := in.Size
	if size <= 0 {
		size = uc.defaultSize
	}
	if size > uc.maxSize {
		size = uc.maxSize
	}

	// Se pide una fila extra para saber si hay página siguiente.
	events, err := uc.store.Audit().List(ctx, filter, size+1)
	if err != nil {
		return nil, err
	}
	out := &dto.AuditPageResponse{Items: make([]dto.AuditEventResponse, 0, size)}
	if len(events) > size {
		events = events[:size]
		last := events[len(events)-1]
		out.NextCursor = EncodeCursor(repository.AuditKey{CreatedAt: last.CreatedAt, Seq: last.Seq})
	}
	for _, ev := range events {
		out.Items = append(out.Items, dto.AuditEventFromEntity(ev))
	}
	return out, nil
}

// EncodeCursor serializa la llave de paginación en un token opaco.
func EncodeCursor(k repository.AuditKey) string {
	raw := fmt.Sprintf("%d.%d", k.CreatedAt.UnixNano(), k.Seq)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor revierte EncodeCursor.
func DecodeCursor(s string) (repository.AuditKey, error) {
	invalid := domain.NewValidationError("cursor", "cursor inválido")
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return repository.AuditKey{}, invalid
	}
	nanos, seq, ok := strings.Cut(string(raw), ".")
	if !ok {
		return repository.AuditKey{}, invalid
	}
	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return repository.AuditKey{}, invalid
	}
	q, err := strconv.ParseInt(seq, 10, 64)
	if err != nil || q < 0 {
		return repository.AuditKey{}, invalid
	}
	return repository.AuditKey{CreatedAt: time.Unix(0, n).UTC(), Seq: q}, nil
}

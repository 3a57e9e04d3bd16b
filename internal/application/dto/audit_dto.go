package dto

import "time"

// AuditListRequest filtros de GET /api/audit. Cursor es opaco (lo devuelve la página anterior).
type AuditListRequest struct {
	EntityType string `query:"entity_type" validate:"omitempty,oneof=trade_in repair lead delivery sale actor"`
	EntityID   string `query:"entity_id"`
	ActorID    string `query:"actor_id"`
	Action     string `query:"action" validate:"omitempty,max=100"`
	Since      string `query:"since" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"` // RFC 3339
	Cursor     string `query:"cursor"`
	Size       int    `query:"size" validate:"min=0"`
}

// AuditEventResponse un evento de auditoría.
type AuditEventResponse struct {
	ID         int64     `json:"id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditPageResponse página de eventos, del más reciente al más antiguo.
// NextCursor vacío = no hay más páginas.
type AuditPageResponse struct {
	Items      []AuditEventResponse `json:"items"`
	NextCursor string               `json:"next_cursor,omitempty"`
}

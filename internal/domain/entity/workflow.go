package entity

import "time"

// Workflow campos comunes a TradeIn, Repair, Lead y Delivery.
// Number se asigna una sola vez al crear y nunca se reutiliza.
type Workflow struct {
	ID         string
	Number     string
	OwnerID    string // actor creador
	AssigneeID string // "" = sin asignar
	CreatedAt  time.Time
	UpdatedAt  time.Time
	UpdatedBy  string
	ClosedAt   *time.Time
	ClosedBy   string
}

// Touch registra quién y cuándo modificó el registro.
func (w *Workflow) Touch(actorID string, now time.Time) {
	w.UpdatedAt = now
	w.UpdatedBy = actorID
}

// Close marca la entrada a un estado terminal.
func (w *Workflow) Close(actorID string, now time.Time) {
	t := now
	w.ClosedAt = &t
	w.ClosedBy = actorID
}

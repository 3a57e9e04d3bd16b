package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeadStatus estados de un prospecto de venta.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadFollowUp  LeadStatus = "follow_up"
	LeadConverted LeadStatus = "converted"
	LeadLost      LeadStatus = "lost"
)

// Lead prospecto de venta. "Vencido" no es un estado: se calcula al leer.
type Lead struct {
	Workflow
	Status LeadStatus

	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Interest      string // equipo o servicio de interés
	Source        string // walk_in, phone, web, referral...
	Notes         string

	EstimatedValue decimal.Decimal
	FollowUpDate   *time.Time
}

// IsClosed true en converted o lost.
func (l *Lead) IsClosed() bool {
	return l.Status == LeadConverted || l.Status == LeadLost
}

// IsOverdue un lead abierto cuyo seguimiento quedó en el pasado.
func (l *Lead) IsOverdue(now time.Time) bool {
	return !l.IsClosed() && l.FollowUpDate != nil && l.FollowUpDate.Before(now)
}

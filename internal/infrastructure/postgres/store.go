package postgres

import (
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store agrupa los repositorios sobre un mismo Querier (pool o transacción).
type Store struct {
	q Querier
}

// NewStore construye el Store. Con el pool cada operación es autocommit;
// TxRunner lo construye con la pgx.Tx en curso.
func NewStore(q Querier) *Store {
	return &Store{q: q}
}

func (s *Store) Actors() repository.ActorRepository        { return NewActorRepository(s.q) }
func (s *Store) Audit() repository.AuditRepository         { return NewAuditRepository(s.q) }
func (s *Store) Sequences() repository.SequenceRepository  { return NewSequenceRepository(s.q) }
func (s *Store) TradeIns() repository.TradeInRepository    { return NewTradeInRepository(s.q) }
func (s *Store) Repairs() repository.RepairRepository      { return NewRepairRepository(s.q) }
func (s *Store) Leads() repository.LeadRepository          { return NewLeadRepository(s.q) }
func (s *Store) Deliveries() repository.DeliveryRepository { return NewDeliveryRepository(s.q) }
func (s *Store) Sales() repository.SaleRepository          { return NewSaleRepository(s.q) }
func (s *Store) Metrics() repository.MetricsRepository     { return NewMetricsRepository(s.q) }

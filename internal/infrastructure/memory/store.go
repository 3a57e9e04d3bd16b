// Package memory implementa los puertos de persistencia en memoria del proceso.
// Sirve para desarrollo local (STORE_DRIVER=memory) y para las pruebas de los casos de uso.
//
// Una transacción toma el lock exclusivo, trabaja sobre una copia del estado y
// la publica al confirmar; si fn falla la copia se descarta.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

var (
	_ repository.Store = (*Store)(nil)
	_ ports.TxRunner   = (*Store)(nil)
)

type state struct {
	actors     map[string]entity.Actor
	usernames  map[string]string // username -> id
	audit      []entity.AuditEvent
	lastSeq    int64
	counters   map[domain.EntityType]int64
	tradeIns   map[string]entity.TradeIn
	repairs    map[string]entity.Repair
	leads      map[string]entity.Lead
	deliveries map[string]entity.Delivery
	sales      map[string]entity.Sale
}

func newState() *state {
	return &state{
		actors:     map[string]entity.Actor{},
		usernames:  map[string]string{},
		counters:   map[domain.EntityType]int64{},
		tradeIns:   map[string]entity.TradeIn{},
		repairs:    map[string]entity.Repair{},
		leads:      map[string]entity.Lead{},
		deliveries: map[string]entity.Delivery{},
		sales:      map[string]entity.Sale{},
	}
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		// cap = len: un append en la copia nunca escribe sobre el arreglo confirmado.
		audit:      s.audit[:len(s.audit):len(s.audit)],
		actors:     cloneMap(s.actors),
		usernames:  cloneMap(s.usernames),
		lastSeq:    s.lastSeq,
		counters:   cloneMap(s.counters),
		tradeIns:   cloneMap(s.tradeIns),
		repairs:    cloneMap(s.repairs),
		leads:      cloneMap(s.leads),
		deliveries: cloneMap(s.deliveries),
		sales:      cloneMap(s.sales),
	}
}

// Store almacenamiento en memoria. Es Store (lecturas y escrituras autocommit) y TxRunner.
type Store struct {
	mu sync.RWMutex
	st *state
}

// New crea un almacenamiento vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con el lock exclusivo sobre una copia del estado; la publica si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable("memory begin", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.st.clone()
	if err := fn(&txView{db: db{st: staged}}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.Unavailable("memory commit", err)
	}
	s.st = staged
	return nil
}

// db acceso al estado. En el Store raíz toma el RWMutex; dentro de una
// transacción el lock ya está tomado y las funciones son no-op.
type db struct {
	st    *state
	store *Store
}

func (d db) read() (*state, func()) {
	if d.store == nil {
		return d.st, func() {}
	}
	d.store.mu.RLock()
	return d.store.st, d.store.mu.RUnlock
}

func (d db) write() (*state, func()) {
	if d.store == nil {
		return d.st, func() {}
	}
	d.store.mu.Lock()
	return d.store.st, d.store.mu.Unlock
}

func (s *Store) root() db { return db{store: s} }

func (s *Store) Actors() repository.ActorRepository        { return actorRepo{s.root()} }
func (s *Store) Audit() repository.AuditRepository         { return auditRepo{s.root()} }
func (s *Store) Sequences() repository.SequenceRepository  { return sequenceRepo{s.root()} }
func (s *Store) TradeIns() repository.TradeInRepository    { return tradeInRepo{s.root()} }
func (s *Store) Repairs() repository.RepairRepository      { return repairRepo{s.root()} }
func (s *Store) Leads() repository.LeadRepository          { return leadRepo{s.root()} }
func (s *Store) Deliveries() repository.DeliveryRepository { return deliveryRepo{s.root()} }
func (s *Store) Sales() repository.SaleRepository          { return saleRepo{s.root()} }
func (s *Store) Metrics() repository.MetricsRepository     { return metricsRepo{s.root()} }

// txView repositorios atados a la copia de una transacción.
type txView struct {
	db db
}

func (t *txView) Actors() repository.ActorRepository        { return actorRepo{t.db} }
func (t *txView) Audit() repository.AuditRepository         { return auditRepo{t.db} }
func (t *txView) Sequences() repository.SequenceRepository  { return sequenceRepo{t.db} }
func (t *txView) TradeIns() repository.TradeInRepository    { return tradeInRepo{t.db} }
func (t *txView) Repairs() repository.RepairRepository      { return repairRepo{t.db} }
func (t *txView) Leads() repository.LeadRepository          { return leadRepo{t.db} }
func (t *txView) Deliveries() repository.DeliveryRepository { return deliveryRepo{t.db} }
func (t *txView) Sales() repository.SaleRepository          { return saleRepo{t.db} }
func (t *txView) Metrics() repository.MetricsRepository     { return metricsRepo{t.db} }

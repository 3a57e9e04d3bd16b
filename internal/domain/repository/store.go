package repository

// Store agrupa los repositorios atados a una misma conexión o transacción.
// Los adaptadores devuelven (nil, nil) cuando un registro no existe.
type Store interface {
	Actors() ActorRepository
	Audit() AuditRepository
	Sequences() SequenceRepository
	TradeIns() TradeInRepository
	Repairs() RepairRepository
	Leads() LeadRepository
	Deliveries() DeliveryRepository
	Sales() SaleRepository
	Metrics() MetricsRepository
}

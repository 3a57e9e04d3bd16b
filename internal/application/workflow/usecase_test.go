package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/application/workflow"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	"github.com/jhoicas/Phoneshop-api/internal/infrastructure/memory"
	"github.com/jhoicas/Phoneshop-api/pkg/clock"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

var t0 = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memory.Store
	clock   *clock.Fixed
	uc      *workflow.UseCase
	owner   *entity.Actor
	manager *entity.Actor
	staff   *entity.Actor
	other   *entity.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New()
	clk := clock.NewFixed(t0)
	f := &fixture{
		store: st,
		clock: clk,
		uc:    workflow.NewUseCase(st, audit.NewRecorder(nil), clk, nil, logger.Nop()),
	}
	f.owner = f.seedActor(t, "owner", domain.RoleOwner, true)
	f.manager = f.seedActor(t, "manager", domain.RoleManager, true)
	f.staff = f.seedActor(t, "staff", domain.RoleStaff, true)
	f.other = f.seedActor(t, "other", domain.RoleStaff, true)
	return f
}

func (f *fixture) seedActor(t *testing.T, username string, role domain.Role, active bool) *entity.Actor {
	t.Helper()
	a := &entity.Actor{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         username,
		PasswordHash: "x",
		Role:         role,
		Active:       active,
		CreatedAt:    t0,
		UpdatedAt:    t0,
	}
	require.NoError(t, f.store.Actors().Create(context.Background(), a))
	return a
}

func (f *fixture) auditCount(t *testing.T, et domain.EntityType, id string) int {
	t.Helper()
	n, err := f.store.Audit().CountFor(context.Background(), et, id)
	require.NoError(t, err)
	return n
}

func (f *fixture) lastAction(t *testing.T, et domain.EntityType, id string) string {
	t.Helper()
	events, err := f.store.Audit().List(context.Background(), repository.AuditFilter{EntityType: et, EntityID: id}, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	return events[0].Action
}

func tradeInRequest() dto.CreateTradeInRequest {
	return dto.CreateTradeInRequest{
		Brand:        "Apple",
		Model:        "iPhone 12",
		IMEI:         "356789012345678",
		CustomerName: "Carlos",
		BaseValue:    decimal.NewFromInt(400),
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Trade-ins
// ──────────────────────────────────────────────────────────────────────────────

func TestTradeIn_FullFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	score := 80
	in := tradeInRequest()
	in.ConditionScore = &score
	ti, err := f.uc.CreateTradeIn(ctx, f.staff, in)
	require.NoError(t, err)
	assert.Equal(t, "TI-10001", ti.Number)
	assert.Equal(t, "pending", ti.Status)
	assert.Equal(t, f.staff.ID, ti.OwnerID)
	assert.True(t, decimal.NewFromInt(320).Equal(ti.CalculatedOffer), "400 * 80 / 100")
	assert.Equal(t, "trade_in.created", f.lastAction(t, domain.EntityTradeIn, ti.ID))

	// staff no revisa
	_, err = f.uc.TransitionTradeIn(ctx, f.staff, ti.ID, dto.TransitionRequest{Status: "approved"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	f.clock.Advance(time.Hour)
	approved, err := f.uc.TransitionTradeIn(ctx, f.manager, ti.ID, dto.TransitionRequest{Status: "approved", FinalOffer: dec("300")})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.FinalOffer)
	assert.True(t, decimal.NewFromInt(300).Equal(*approved.FinalOffer))
	assert.Equal(t, f.manager.ID, approved.ReviewedBy)
	assert.Nil(t, approved.ClosedAt)

	// el creador paga
	_, err = f.uc.TransitionTradeIn(ctx, f.staff, ti.ID, dto.TransitionRequest{Status: "paid_out"})
	assert.ErrorIs(t, err, domain.ErrValidation, "payout_method obligatorio")

	paid, err := f.uc.TransitionTradeIn(ctx, f.staff, ti.ID, dto.TransitionRequest{Status: "paid_out", PayoutMethod: entity.PayoutCash})
	require.NoError(t, err)
	assert.Equal(t, "paid_out", paid.Status)
	assert.Equal(t, entity.PayoutCash, paid.PayoutMethod)
	require.NotNil(t, paid.ClosedAt)
	assert.Equal(t, f.staff.ID, paid.ClosedBy)

	assert.Equal(t, 3, f.auditCount(t, domain.EntityTradeIn, ti.ID))
	assert.Equal(t, "trade_in.transitioned", f.lastAction(t, domain.EntityTradeIn, ti.ID))
}

func TestTradeIn_ApproveDefaultsToCalculatedOffer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ti, err := f.uc.CreateTradeIn(ctx, f.staff, tradeInRequest())
	require.NoError(t, err)

	out, err := f.uc.TransitionTradeIn(ctx, f.owner, ti.ID, dto.TransitionRequest{Status: "approved"})
	require.NoError(t, err)
	require.NotNil(t, out.FinalOffer)
	assert.True(t, out.CalculatedOffer.Equal(*out.FinalOffer))
}

func TestTradeIn_RejectedIsTerminalWithoutOffer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ti, err := f.uc.CreateTradeIn(ctx, f.staff, tradeInRequest())
	require.NoError(t, err)

	out, err := f.uc.TransitionTradeIn(ctx, f.manager, ti.ID, dto.TransitionRequest{Status: "rejected", Note: "pantalla rota"})
	require.NoError(t, err)
	assert.Nil(t, out.FinalOffer)
	assert.NotNil(t, out.ClosedAt)

	_, err = f.uc.TransitionTradeIn(ctx, f.manager, ti.ID, dto.TransitionRequest{Status: "approved"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransition_InvalidLeavesRecordUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ti, err := f.uc.CreateTradeIn(ctx, f.staff, tradeInRequest())
	require.NoError(t, err)

	_, err = f.uc.TransitionTradeIn(ctx, f.staff, ti.ID, dto.TransitionRequest{Status: "paid_out", PayoutMethod: "cash"})
	require.Error(t, err)
	var te *domain.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "pending", te.From)
	assert.Equal(t, "paid_out", te.To)

	stored, err := f.store.TradeIns().GetByID(ctx, ti.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TradeInPending, stored.Status)
	assert.Empty(t, stored.PayoutMethod)
	assert.Equal(t, 1, f.auditCount(t, domain.EntityTradeIn, ti.ID), "solo el alta")
}

func TestTransition_UnknownStatusIsValidation(t *testing.T) {
	f := newFixture(t)
	ti, err := f.uc.CreateTradeIn(context.Background(), f.staff, tradeInRequest())
	require.NoError(t, err)

	_, err = f.uc.Transition(context.Background(), f.staff, domain.EntityTradeIn, ti.ID, dto.TransitionRequest{Status: "lost"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransition_NotVisibleIsForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.uc.CreateRepair(ctx, f.staff, dto.CreateRepairRequest{
		DeviceBrand: "Samsung", DeviceModel: "S21", CustomerName: "Lucía", IssueDescription: "no carga",
	})
	require.NoError(t, err)

	_, err = f.uc.TransitionRepair(ctx, f.other, r.ID, dto.TransitionRequest{Status: "diagnosing"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.TransitionRepair(ctx, f.other, uuid.NewString(), dto.TransitionRequest{Status: "diagnosing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reparaciones, leads, domicilios
// ──────────────────────────────────────────────────────────────────────────────

func TestRepair_CostsDiagnosisAndCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.uc.CreateRepair(ctx, f.staff, dto.CreateRepairRequest{
		DeviceBrand: "Xiaomi", DeviceModel: "Note 10", CustomerName: "Pedro", IssueDescription: "pantalla",
		RepairCost: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.Equal(t, "RP-10001", r.Number)
	assert.Equal(t, "received", r.Status)
	assert.True(t, decimal.NewFromInt(50).Equal(r.TotalCost))

	diag := "display dañado"
	r2, err := f.uc.TransitionRepair(ctx, f.staff, r.ID, dto.TransitionRequest{Status: "diagnosing", Diagnosis: &diag, PartsCost: dec("120.50")})
	require.NoError(t, err)
	assert.Equal(t, diag, r2.Diagnosis)
	assert.True(t, decimal.RequireFromString("170.50").Equal(r2.TotalCost))

	_, err = f.uc.TransitionRepair(ctx, f.staff, r.ID, dto.TransitionRequest{Status: "in_progress"})
	require.NoError(t, err)
	done, err := f.uc.TransitionRepair(ctx, f.staff, r.ID, dto.TransitionRequest{Status: "completed"})
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, f.staff.ID, done.CompletedBy)
	assert.NotNil(t, done.ClosedAt)

	_, err = f.uc.TransitionRepair(ctx, f.staff, r.ID, dto.TransitionRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRepair_NegativeCostRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateRepair(context.Background(), f.staff, dto.CreateRepairRequest{
		DeviceBrand: "Xiaomi", DeviceModel: "Note 10", CustomerName: "Pedro", IssueDescription: "pantalla",
		RepairCost: decimal.NewFromInt(-1),
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "repair_cost")
}

func TestTransition_RepeatedTargetIsAuditedNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.uc.CreateRepair(ctx, f.staff, dto.CreateRepairRequest{
		DeviceBrand: "Apple", DeviceModel: "iPhone X", CustomerName: "Ana", IssueDescription: "batería",
	})
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	out, err := f.uc.TransitionRepair(ctx, f.staff, r.ID, dto.TransitionRequest{Status: "received"})
	require.NoError(t, err)
	assert.Equal(t, "received", out.Status)
	assert.Equal(t, t0, out.UpdatedAt, "una repetición no toca el registro")
	assert.Equal(t, "repair.transition_repeated", f.lastAction(t, domain.EntityRepair, r.ID))
	assert.Equal(t, 2, f.auditCount(t, domain.EntityRepair, r.ID))
}

func TestLead_FollowUpRescheduleAndOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	l, err := f.uc.CreateLead(ctx, f.staff, dto.CreateLeadRequest{CustomerName: "Marta", Interest: "Galaxy S24"})
	require.NoError(t, err)
	assert.Equal(t, "LD-10001", l.Number)

	_, err = f.uc.TransitionLead(ctx, f.staff, l.ID, dto.TransitionRequest{Status: "contacted"})
	require.NoError(t, err)

	first := t0.Add(24 * time.Hour)
	out, err := f.uc.TransitionLead(ctx, f.staff, l.ID, dto.TransitionRequest{Status: "follow_up", FollowUpDate: &first})
	require.NoError(t, err)
	assert.False(t, out.Overdue)

	second := t0.Add(72 * time.Hour)
	out, err = f.uc.TransitionLead(ctx, f.staff, l.ID, dto.TransitionRequest{Status: "follow_up", FollowUpDate: &second})
	require.NoError(t, err)
	require.NotNil(t, out.FollowUpDate)
	assert.True(t, second.Equal(*out.FollowUpDate))
	assert.Equal(t, "lead.transitioned", f.lastAction(t, domain.EntityLead, l.ID))

	// sin fecha: repetición
	_, err = f.uc.TransitionLead(ctx, f.staff, l.ID, dto.TransitionRequest{Status: "follow_up"})
	require.NoError(t, err)
	assert.Equal(t, "lead.transition_repeated", f.lastAction(t, domain.EntityLead, l.ID))

	f.clock.Set(t0.Add(96 * time.Hour))
	out, err = f.uc.TransitionLead(ctx, f.staff, l.ID, dto.TransitionRequest{Status: "converted"})
	require.NoError(t, err)
	assert.False(t, out.Overdue, "un lead cerrado nunca está vencido")
}

func TestDelivery_FailedRequiresReasonAndSaleMustExist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateDelivery(ctx, f.staff, dto.CreateDeliveryRequest{
		SaleID: uuid.NewString(), CustomerName: "Luis", Address: "Cra 7 # 10-20",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	sale, err := f.uc.CreateSale(ctx, f.staff, dto.CreateSaleRequest{
		ProductName: "Cargador", Quantity: 1, UnitPrice: decimal.NewFromInt(20), PaymentMethod: "cash",
	})
	require.NoError(t, err)

	d, err := f.uc.CreateDelivery(ctx, f.staff, dto.CreateDeliveryRequest{
		SaleID: sale.ID, CustomerName: "Luis", Address: "Cra 7 # 10-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "DL-10001", d.Number, "el contador de domicilios no se consumió con el alta fallida")

	_, err = f.uc.TransitionDelivery(ctx, f.staff, d.ID, dto.TransitionRequest{Status: "failed"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	out, err := f.uc.TransitionDelivery(ctx, f.staff, d.ID, dto.TransitionRequest{Status: "failed", FailureReason: "cliente ausente"})
	require.NoError(t, err)
	assert.Equal(t, "failed", out.Status)
	assert.Equal(t, "cliente ausente", out.FailureReason)
	assert.NotNil(t, out.ClosedAt)
}

func TestSale_ProfitOnlyForFinancialRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := dto.CreateSaleRequest{
		ProductName: "iPhone 13", Quantity: 2, UnitPrice: decimal.NewFromInt(800),
		CostPrice: dec("600"), PaymentMethod: "card",
	}
	bySeller, err := f.uc.CreateSale(ctx, f.staff, in)
	require.NoError(t, err)
	assert.Equal(t, "SL-10001", bySeller.Number)
	assert.True(t, decimal.NewFromInt(1600).Equal(bySeller.TotalPrice))
	assert.Nil(t, bySeller.Profit)
	assert.Nil(t, bySeller.CostPrice)

	byOwner, err := f.uc.CreateSale(ctx, f.owner, in)
	require.NoError(t, err)
	require.NotNil(t, byOwner.Profit)
	assert.True(t, decimal.NewFromInt(400).Equal(*byOwner.Profit))

	in.CostPrice = nil
	unknown, err := f.uc.CreateSale(ctx, f.owner, in)
	require.NoError(t, err)
	require.NotNil(t, unknown.Profit)
	assert.True(t, unknown.Profit.IsZero())
}

func TestSale_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateSale(context.Background(), f.staff, dto.CreateSaleRequest{
		Quantity: 0, UnitPrice: decimal.NewFromInt(10), PaymentMethod: "bitcoin",
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "quantity")
	assert.Contains(t, ve.Fields, "payment_method")
	assert.Contains(t, ve.Fields, "product_name")
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAssign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.uc.CreateRepair(ctx, f.manager, dto.CreateRepairRequest{
		DeviceBrand: "Motorola", DeviceModel: "G8", CustomerName: "Sofía", IssueDescription: "cámara",
	})
	require.NoError(t, err)

	_, err = f.uc.Assign(ctx, f.staff, domain.EntityRepair, r.ID, dto.AssignRequest{AssigneeID: f.staff.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.uc.Assign(ctx, f.manager, domain.EntityRepair, r.ID, dto.AssignRequest{AssigneeID: f.staff.ID})
	require.NoError(t, err)
	assigned, ok := out.(dto.RepairResponse)
	require.True(t, ok)
	assert.Equal(t, f.staff.ID, assigned.AssigneeID)
	assert.Equal(t, "repair.assigned", f.lastAction(t, domain.EntityRepair, r.ID))

	// el asignado ahora puede avanzarla
	_, err = f.uc.TransitionRepair(ctx, f.staff, r.ID, dto.TransitionRequest{Status: "diagnosing"})
	require.NoError(t, err)

	_, err = f.uc.Assign(ctx, f.manager, domain.EntitySale, r.ID, dto.AssignRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAssign_InactiveAssigneeAndClosedRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gone := f.seedActor(t, "gone", domain.RoleStaff, false)

	d, err := f.uc.CreateDelivery(ctx, f.manager, dto.CreateDeliveryRequest{CustomerName: "Eva", Address: "Calle 1"})
	require.NoError(t, err)

	_, err = f.uc.Assign(ctx, f.manager, domain.EntityDelivery, d.ID, dto.AssignRequest{AssigneeID: gone.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.TransitionDelivery(ctx, f.manager, d.ID, dto.TransitionRequest{Status: "failed", FailureReason: "dirección errada"})
	require.NoError(t, err)
	_, err = f.uc.Assign(ctx, f.manager, domain.EntityDelivery, d.ID, dto.AssignRequest{AssigneeID: f.staff.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_StaffMaySelfAssignOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateLead(ctx, f.staff, dto.CreateLeadRequest{CustomerName: "Raúl", AssigneeID: f.other.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	l, err := f.uc.CreateLead(ctx, f.staff, dto.CreateLeadRequest{CustomerName: "Raúl", AssigneeID: f.staff.ID})
	require.NoError(t, err)
	assert.Equal(t, "LD-10001", l.Number)
}

func TestInactiveActorCannotMutate(t *testing.T) {
	f := newFixture(t)
	gone := f.seedActor(t, "gone", domain.RoleOwner, false)

	_, err := f.uc.CreateTradeIn(context.Background(), gone, tradeInRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.CreateTradeIn(context.Background(), nil, tradeInRequest())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ConcurrentNumbersAreDistinct(t *testing.T) {
	f := newFixture(t)
	const n = 60

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[string]bool, n)
		errs    []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := f.uc.CreateRepair(context.Background(), f.staff, dto.CreateRepairRequest{
				DeviceBrand: "Apple", DeviceModel: "iPhone", CustomerName: fmt.Sprintf("cliente %d", i), IssueDescription: "x",
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			numbers[out.Number] = true
		}(i)
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, numbers, n)
	for i := 1; i <= n; i++ {
		assert.True(t, numbers[fmt.Sprintf("RP-%05d", 10000+i)], "falta RP-%05d", 10000+i)
	}
}

// steppingClock avanza un segundo por lectura; la primera lectura queda detenida
// hasta que se cierre release.
type steppingClock struct {
	mu      sync.Mutex
	now     time.Time
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	c.calls++
	first := c.calls == 1
	c.now = c.now.Add(time.Second)
	now := c.now
	c.mu.Unlock()
	if first {
		close(c.entered)
		<-c.release
	}
	return now
}

func TestCreate_NumbersFollowCreationTime(t *testing.T) {
	st := memory.New()
	clk := &steppingClock{now: t0, entered: make(chan struct{}), release: make(chan struct{})}
	uc := workflow.NewUseCase(st, audit.NewRecorder(nil), clk, nil, logger.Nop())
	f := &fixture{store: st}
	seller := f.seedActor(t, "seller", domain.RoleStaff, true)

	in := dto.CreateSaleRequest{ProductName: "Funda", Quantity: 1, UnitPrice: decimal.NewFromInt(20), PaymentMethod: "cash"}
	results := make(chan *dto.SaleResponse, 2)
	errs := make(chan error, 2)
	create := func() {
		out, err := uc.CreateSale(context.Background(), seller, in)
		errs <- err
		results <- out
	}

	go create()
	<-clk.entered
	secondDone := make(chan struct{})
	go func() {
		create()
		close(secondDone)
	}()
	// La segunda alta no debe adelantarse a la que ya leyó la hora.
	select {
	case <-secondDone:
	case <-time.After(100 * time.Millisecond):
	}
	close(clk.release)

	byNumber := map[string]time.Time{}
	for i := 0; i < 2; i++ {
		require.NoError(t, <-errs)
		out := <-results
		byNumber[out.Number] = out.CreatedAt
	}
	require.Len(t, byNumber, 2)
	assert.True(t, byNumber["SL-10001"].Before(byNumber["SL-10002"]),
		"SL-10001 %s, SL-10002 %s", byNumber["SL-10001"], byNumber["SL-10002"])
}

// failingAudit simula la caída del registro de auditoría en medio de una transacción.
type failingAudit struct{ repository.AuditRepository }

func (failingAudit) Append(context.Context, *entity.AuditEvent) error {
	return domain.Unavailable("audit append", errors.New("disk full"))
}

type auditlessStore struct{ repository.Store }

func (s auditlessStore) Audit() repository.AuditRepository { return failingAudit{s.Store.Audit()} }

type auditlessRunner struct{ inner ports.TxRunner }

func (r auditlessRunner) Run(ctx context.Context, fn func(repository.Store) error) error {
	return r.inner.Run(ctx, func(s repository.Store) error { return fn(auditlessStore{s}) })
}

func TestCreate_AuditFailureAbortsMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	broken := workflow.NewUseCase(auditlessRunner{f.store}, audit.NewRecorder(nil), f.clock, nil, logger.Nop())

	_, err := broken.CreateTradeIn(ctx, f.staff, tradeInRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	n, err := f.store.TradeIns().Count(ctx, repository.ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, n, "sin auditoría no hay registro")

	ti, err := f.uc.CreateTradeIn(ctx, f.staff, tradeInRequest())
	require.NoError(t, err)
	assert.Equal(t, "TI-10001", ti.Number, "el número reservado se descartó con la transacción")
}

func TestTransition_AuditFailureKeepsPreviousState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	broken := workflow.NewUseCase(auditlessRunner{f.store}, audit.NewRecorder(nil), f.clock, nil, logger.Nop())

	ti, err := f.uc.CreateTradeIn(ctx, f.staff, tradeInRequest())
	require.NoError(t, err)

	_, err = broken.TransitionTradeIn(ctx, f.manager, ti.ID, dto.TransitionRequest{Status: "approved"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	stored, err := f.store.TradeIns().GetByID(ctx, ti.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TradeInPending, stored.Status)
	assert.Nil(t, stored.FinalOffer)
}

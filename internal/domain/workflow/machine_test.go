package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/workflow"
)

func TestTradeInMachine(t *testing.T) {
	m := workflow.TradeIn
	assert.Equal(t, entity.TradeInPending, m.Initial())
	assert.Equal(t, domain.EntityTradeIn, m.Entity())

	assert.NoError(t, m.Check(entity.TradeInPending, entity.TradeInApproved))
	assert.NoError(t, m.Check(entity.TradeInPending, entity.TradeInRejected))
	assert.NoError(t, m.Check(entity.TradeInApproved, entity.TradeInPaidOut))

	for _, bad := range [][2]entity.TradeInStatus{
		{entity.TradeInPending, entity.TradeInPaidOut},
		{entity.TradeInRejected, entity.TradeInApproved},
		{entity.TradeInPaidOut, entity.TradeInPending},
		{entity.TradeInApproved, entity.TradeInApproved},
	} {
		err := m.Check(bad[0], bad[1])
		var te *domain.TransitionError
		require.ErrorAs(t, err, &te, "%s -> %s", bad[0], bad[1])
		assert.Equal(t, string(bad[0]), te.From)
	}
	assert.True(t, m.IsTerminal(entity.TradeInRejected))
	assert.True(t, m.IsTerminal(entity.TradeInPaidOut))
	assert.False(t, m.IsTerminal(entity.TradeInApproved))
}

func TestRepairMachine(t *testing.T) {
	m := workflow.Repair
	path := []entity.RepairStatus{
		entity.RepairReceived, entity.RepairDiagnosing, entity.RepairAwaitingParts,
		entity.RepairInProgress, entity.RepairCompleted,
	}
	for i := 1; i < len(path); i++ {
		assert.NoError(t, m.Check(path[i-1], path[i]))
	}
	for _, open := range m.Open() {
		assert.NoError(t, m.Check(open, entity.RepairCancelled), "cancelable desde %s", open)
	}
	assert.Error(t, m.Check(entity.RepairReceived, entity.RepairCompleted))
	assert.Error(t, m.Check(entity.RepairCancelled, entity.RepairReceived))
	assert.Len(t, m.Open(), 4)
	assert.Len(t, m.States(), 6)
}

func TestLeadMachine_FollowUpRepeats(t *testing.T) {
	m := workflow.Lead
	assert.True(t, m.CanTransition(entity.LeadFollowUp, entity.LeadFollowUp))
	assert.False(t, m.CanTransition(entity.LeadContacted, entity.LeadContacted))
	assert.False(t, m.CanTransition(entity.LeadNew, entity.LeadConverted))
	assert.NoError(t, m.Check(entity.LeadFollowUp, entity.LeadLost))
}

func TestDeliveryMachine(t *testing.T) {
	m := workflow.Delivery
	assert.NoError(t, m.Check(entity.DeliveryPending, entity.DeliveryFailed))
	assert.NoError(t, m.Check(entity.DeliveryOutForDelivery, entity.DeliveryFailed))
	assert.Error(t, m.Check(entity.DeliveryPending, entity.DeliveryCompleted))
	assert.ElementsMatch(t, []entity.DeliveryStatus{entity.DeliveryPending, entity.DeliveryOutForDelivery}, m.Open())
}

func TestParse(t *testing.T) {
	st, err := workflow.Delivery.Parse("out_for_delivery")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryOutForDelivery, st)

	_, err = workflow.Delivery.Parse("shipped")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

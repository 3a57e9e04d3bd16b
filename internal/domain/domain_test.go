package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
)

func TestCapabilities(t *testing.T) {
	tests := []struct {
		role                                                            domain.Role
		viewAll, financials, manageActors, assignWork, staffMetrics bool
	}{
		{domain.RoleOwner, true, true, true, true, true},
		{domain.RoleManager, true, false, false, true, true},
		{domain.RoleStaff, false, false, false, false, false},
		{domain.Role("admin"), false, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.viewAll, domain.CanViewAllEntities(tt.role))
			assert.Equal(t, tt.financials, domain.CanViewFinancials(tt.role))
			assert.Equal(t, tt.manageActors, domain.CanManageActors(tt.role))
			assert.Equal(t, tt.assignWork, domain.CanAssignWork(tt.role))
			assert.Equal(t, tt.staffMetrics, domain.CanViewStaffMetrics(tt.role))
		})
	}
}

func TestCanSee(t *testing.T) {
	assert.True(t, domain.CanSee(domain.RoleManager, "m", "otro", ""))
	assert.True(t, domain.CanSee(domain.RoleStaff, "s", "s", ""))
	assert.True(t, domain.CanSee(domain.RoleStaff, "s", "otro", "s"))
	assert.False(t, domain.CanSee(domain.RoleStaff, "s", "otro", ""))
	assert.False(t, domain.CanSee(domain.RoleStaff, "", "", ""), "actor vacío nunca coincide con registro sin asignar")
}

func TestParseRole(t *testing.T) {
	r, err := domain.ParseRole(" Manager ")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, r)

	_, err = domain.ParseRole("root")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBusinessNumbers(t *testing.T) {
	tests := []struct {
		t      domain.EntityType
		issued int64
		want   string
	}{
		{domain.EntityTradeIn, 0, "TI-10001"},
		{domain.EntityRepair, 41, "RP-10042"},
		{domain.EntityLead, 0, "LD-10001"},
		{domain.EntityDelivery, 9, "DL-10010"},
		{domain.EntitySale, 89998, "SL-99999"},
		{domain.EntitySale, 89999, "SL-100000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := domain.FormatBusinessNumber(tt.t, tt.issued)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			et, ordinal, err := domain.ParseBusinessNumber(got)
			require.NoError(t, err)
			assert.Equal(t, tt.t, et)
			assert.Equal(t, tt.issued+1, ordinal)
		})
	}

	_, err := domain.FormatBusinessNumber(domain.EntityActor, 0)
	assert.Error(t, err)
	_, err = domain.FormatBusinessNumber(domain.EntitySale, -1)
	assert.Error(t, err)

	for _, bad := range []string{"TI10001", "XX-10001", "TI-10000", "TI-abc"} {
		_, _, err := domain.ParseBusinessNumber(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

func TestEntityTypes(t *testing.T) {
	et, err := domain.ParseEntityType("repair")
	require.NoError(t, err)
	assert.True(t, et.IsWorkflow())
	assert.False(t, domain.EntitySale.IsWorkflow())

	_, err = domain.ParseEntityType("actor")
	assert.ErrorIs(t, err, domain.ErrValidation, "actor no tiene número de negocio")
}

func TestErrors(t *testing.T) {
	ve := &domain.ValidationError{Fields: map[string]string{"b": "x", "a": "y"}}
	assert.ErrorIs(t, ve, domain.ErrValidation)
	assert.Equal(t, "entrada inválida (a: y; b: x)", ve.Error())

	te := &domain.TransitionError{Entity: domain.EntityLead, From: "new", To: "converted"}
	assert.ErrorIs(t, te, domain.ErrInvalidTransition)
	assert.Contains(t, te.Error(), "new -> converted")

	err := domain.Unavailable("ping", errors.New("timeout"))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "timeout")
}

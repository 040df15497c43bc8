package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled,
	} {
		assert.True(t, s.IsValid(), "status %s should be valid", s)
	}

	assert.False(t, OrderStatus("").IsValid())
	assert.False(t, OrderStatus("delivered").IsValid())
}

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusPaid, OrderStatusShipped, true},
		{OrderStatusPaid, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusCompleted, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusShipped, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusPaid.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestRole_HasPermission(t *testing.T) {
	assert.True(t, RoleSuperAdmin.HasPermission(RoleAdmin))
	assert.True(t, RoleSuperAdmin.HasPermission(RoleSuperAdmin))
	assert.True(t, RoleAdmin.HasPermission(RoleAdmin))
	assert.True(t, RoleAdmin.HasPermission(RoleUser))
	assert.False(t, RoleAdmin.HasPermission(RoleSuperAdmin))
	assert.False(t, RoleUser.HasPermission(RoleAdmin))
	assert.False(t, Role("moderator").HasPermission(RoleUser))
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidOrderStatus(t *testing.T) {
	valid := []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered}
	for _, s := range valid {
		assert.True(t, IsValidOrderStatus(s), "expected %q to be valid", s)
	}

	invalid := []OrderStatus{"", "cancelled", "PAID", OrderStatusInProgress}
	for _, s := range invalid {
		assert.False(t, IsValidOrderStatus(s), "expected %q to be invalid", s)
	}
}

func TestExpandStatusFilter(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		statuses, err := ExpandStatusFilter("")
		require.NoError(t, err)
		assert.Nil(t, statuses)
	})

	t.Run("in-progress aggregates the undelivered statuses", func(t *testing.T) {
		statuses, err := ExpandStatusFilter(OrderStatusInProgress)
		require.NoError(t, err)
		assert.ElementsMatch(t, []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusShipped}, statuses)
	})

	t.Run("single status passes through", func(t *testing.T) {
		statuses, err := ExpandStatusFilter("paid")
		require.NoError(t, err)
		assert.Equal(t, []OrderStatus{OrderStatusPaid}, statuses)
	})

	t.Run("unknown filter errors", func(t *testing.T) {
		_, err := ExpandStatusFilter("refunded")
		assert.ErrorIs(t, err, ErrUnknownStatusFilter)
	})
}

func TestProfileIsAdmin(t *testing.T) {
	assert.True(t, (&Profile{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Profile{Role: RoleCustomer}).IsAdmin())
	assert.False(t, (*Profile)(nil).IsAdmin())
}

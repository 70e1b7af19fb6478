package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotalUsesEmbeddedPrices(t *testing.T) {
	cart := Cart{
		Lines: []CartLine{
			{ID: "l1", Quantity: 2, Product: Product{ID: "p1", Price: 9.99}},
			{ID: "l2", Quantity: 3, Product: Product{ID: "p2", Price: 4.00}},
		},
	}
	assert.InDelta(t, 2*9.99+3*4.00, cart.Total(), 1e-9)

	empty := Cart{}
	assert.Zero(t, empty.Total())
}

func TestCartLineLookups(t *testing.T) {
	cart := Cart{
		Lines: []CartLine{
			{ID: "l1", Quantity: 1, Product: Product{ID: "p1"}},
		},
	}

	line, ok := cart.Line("l1")
	require.True(t, ok)
	assert.Equal(t, "p1", line.Product.ID)

	_, ok = cart.Line("l2")
	assert.False(t, ok)

	line, ok = cart.LineForProduct("p1")
	require.True(t, ok)
	assert.Equal(t, "l1", line.ID)

	_, ok = cart.LineForProduct("p2")
	assert.False(t, ok)
}

func TestCartCloneIsIndependent(t *testing.T) {
	cart := Cart{
		ID:    "c1",
		Lines: []CartLine{{ID: "l1", Quantity: 1}},
	}

	clone := cart.Clone()
	clone.Lines[0].Quantity = 99

	assert.Equal(t, 1, cart.Lines[0].Quantity, "mutating the clone must not touch the original")
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestPaymentMethodIsValid(t *testing.T) {
	assert.True(t, PaymentCredit.IsValid())
	assert.True(t, PaymentPaypal.IsValid())
	assert.True(t, PaymentCashOnDelivery.IsValid())
	assert.False(t, PaymentMethod("bitcoin").IsValid())
}

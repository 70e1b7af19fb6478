package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/commerce"
	"github.com/healthmart/storefront/internal/domain"
	"github.com/healthmart/storefront/pkg/errors"
)

// OrderService is the slice of the order service checkout consumes.
type OrderService interface {
	CreateOrder(ctx context.Context, req commerce.CreateOrderRequest) (*domain.Order, error)
}

// CheckoutCoordinator converts the current cart into an order request.
// Unlike the stores, a failure here is a blocking result for the caller, not
// just a transient notification, because it gates navigation to the order
// confirmation view.
type CheckoutCoordinator struct {
	orders   OrderService
	cart     *CartSynchronizer
	notifier *NotificationQueue
	logger   *zap.Logger
}

// NewCheckoutCoordinator creates a new checkout coordinator
func NewCheckoutCoordinator(orders OrderService, cart *CartSynchronizer, notifier *NotificationQueue, logger *zap.Logger) *CheckoutCoordinator {
	return &CheckoutCoordinator{
		orders:   orders,
		cart:     cart,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit builds an order from the current cart snapshot and submits it. Line
// prices are taken from the cart's embedded product data, not the catalog,
// so a price change between cart view and submission cannot leak in. On
// success the cart is cleared and the order id returned; on failure the cart
// is left untouched.
func (c *CheckoutCoordinator) Submit(ctx context.Context, address domain.Address, payment domain.PaymentMethod) (string, error) {
	snapshot := c.cart.Snapshot()
	if len(snapshot.Lines) == 0 {
		return "", errors.ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		items = append(items, domain.OrderItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}

	order, err := c.orders.CreateOrder(ctx, commerce.CreateOrderRequest{
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   payment,
		TotalAmount:     snapshot.Total(),
	})
	if err != nil {
		c.logger.Error("Order submission failed", zap.Error(err))
		return "", err
	}

	c.logger.Info("Order created",
		zap.String("orderId", order.ID),
		zap.Int("lines", len(items)),
	)
	c.notifier.Success("Your order has been placed.")

	// Post-checkout clear. The order is already accepted, so a failed clear
	// is reported by the synchronizer but does not fail the checkout.
	c.cart.Clear()

	return order.ID, nil
}

package commerce

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/config"
	"github.com/healthmart/storefront/internal/domain"
)

// OrderClient wraps the order service endpoints.
type OrderClient struct {
	client *Client
}

// NewOrderClient creates a new order service client
func NewOrderClient(cfg config.ServiceConfig, logger *zap.Logger) *OrderClient {
	return &OrderClient{
		client: NewClient("orders", cfg, logger),
	}
}

// CreateOrderRequest is the order submission payload.
type CreateOrderRequest struct {
	Items           []domain.OrderItem   `json:"items"`
	ShippingAddress domain.Address       `json:"shippingAddress"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	TotalAmount     float64              `json:"totalAmount"`
	IdempotencyKey  string               `json:"idempotencyKey"`
}

// CreateOrder submits an order. An idempotency key is generated per call so
// a retried submission cannot create a duplicate order.
func (c *OrderClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	var order domain.Order
	if err := c.client.do(ctx, http.MethodPost, "/orders", nil, req, &order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// ListOrders fetches the session's order history.
func (c *OrderClient) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.client.do(ctx, http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

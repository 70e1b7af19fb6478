package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/config"
	"github.com/healthmart/storefront/internal/domain"
	"github.com/healthmart/storefront/pkg/errors"
)

// CartClient wraps the cart service endpoints. Every mutation returns the
// full updated cart, never a delta; the synchronizer's reconciliation rule
// depends on that contract.
type CartClient struct {
	client *Client
}

// NewCartClient creates a new cart service client
func NewCartClient(cfg config.ServiceConfig, logger *zap.Logger) *CartClient {
	return &CartClient{
		client: NewClient("cart", cfg, logger),
	}
}

// ActiveCart fetches the session's cart. An absent cart is a valid empty
// state, not an error.
func (c *CartClient) ActiveCart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	err := c.client.do(ctx, http.MethodGet, "/cart/active", nil, nil, &cart)
	if err != nil {
		if isNotFound(err) {
			return &domain.Cart{}, nil
		}
		return nil, fmt.Errorf("get active cart: %w", err)
	}
	return &cart, nil
}

// AddLine creates a line for the product, or merges into an existing line
// server-side. The client never merges lines itself.
func (c *CartClient) AddLine(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	query := url.Values{}
	query.Set("productId", productID)
	query.Set("quantity", fmt.Sprintf("%d", quantity))

	var cart domain.Cart
	if err := c.client.do(ctx, http.MethodPost, "/cart/items", query, nil, &cart); err != nil {
		return nil, fmt.Errorf("add cart line: %w", err)
	}
	return &cart, nil
}

// UpdateLine sets the quantity of an existing line.
func (c *CartClient) UpdateLine(ctx context.Context, lineID string, quantity int) (*domain.Cart, error) {
	query := url.Values{}
	query.Set("quantity", fmt.Sprintf("%d", quantity))

	var cart domain.Cart
	path := "/cart/items/" + url.PathEscape(lineID)
	if err := c.client.do(ctx, http.MethodPut, path, query, nil, &cart); err != nil {
		if isNotFound(err) {
			return nil, errors.ErrLineNotFound
		}
		return nil, fmt.Errorf("update cart line %s: %w", lineID, err)
	}
	return &cart, nil
}

// RemoveLine deletes a line. Removing an already-absent line is treated as
// success: the server refetches the cart so the caller still converges.
func (c *CartClient) RemoveLine(ctx context.Context, lineID string) (*domain.Cart, error) {
	var cart domain.Cart
	path := "/cart/items/" + url.PathEscape(lineID)
	err := c.client.do(ctx, http.MethodDelete, path, nil, nil, &cart)
	if err != nil {
		if isNotFound(err) {
			// Already removed server-side. Fetch the current cart so the
			// caller still receives a full representation.
			return c.ActiveCart(ctx)
		}
		return nil, fmt.Errorf("remove cart line %s: %w", lineID, err)
	}
	return &cart, nil
}

// Clear removes every line in one request. Idempotent.
func (c *CartClient) Clear(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	err := c.client.do(ctx, http.MethodDelete, "/cart", nil, nil, &cart)
	if err != nil {
		if isNotFound(err) {
			return &domain.Cart{}, nil
		}
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	return &cart, nil
}

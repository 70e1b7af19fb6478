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

// CatalogClient wraps the catalog service endpoints.
type CatalogClient struct {
	client *Client
}

// NewCatalogClient creates a new catalog service client
func NewCatalogClient(cfg config.ServiceConfig, logger *zap.Logger) *CatalogClient {
	return &CatalogClient{
		client: NewClient("catalog", cfg, logger),
	}
}

// ListProducts fetches the full product collection.
func (c *CatalogClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.client.do(ctx, http.MethodGet, "/products", nil, nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single product. A missing id is a distinct,
// non-retryable outcome.
func (c *CatalogClient) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := c.client.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &product)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &product, nil
}

// SearchProducts asks the service for a server-side filtered collection.
func (c *CatalogClient) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	query := url.Values{}
	query.Set("q", term)

	var products []domain.Product
	if err := c.client.do(ctx, http.MethodGet, "/products/search", query, nil, &products); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

// ListByCategory fetches the products carrying the given category tag.
func (c *CatalogClient) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	path := "/products/category/" + url.PathEscape(category)
	if err := c.client.do(ctx, http.MethodGet, path, nil, nil, &products); err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return products, nil
}

package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/config"
	"github.com/healthmart/storefront/internal/domain"
	"github.com/healthmart/storefront/pkg/errors"
)

func testConfig(url string) config.ServiceConfig {
	return config.ServiceConfig{
		BaseURL:     url,
		AccessToken: "test-token",
		Timeout:     2 * time.Second,
	}
}

func TestClient_SendsAuthAndRequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode([]domain.Product{})
	}))
	defer srv.Close()

	catalog := NewCatalogClient(testConfig(srv.URL), zap.NewNop())
	_, err := catalog.ListProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
}

func TestCatalogClient_ListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Product{
			{ID: "p1", Name: "Acme Pain Tablet", Price: 9.99},
		})
	}))
	defer srv.Close()

	catalog := NewCatalogClient(testConfig(srv.URL), zap.NewNop())
	products, err := catalog.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestCatalogClient_GetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such product"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	catalog := NewCatalogClient(testConfig(srv.URL), zap.NewNop())
	_, err := catalog.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrProductNotFound)
}

func TestCatalogClient_TransportFailure(t *testing.T) {
	catalog := NewCatalogClient(testConfig("http://127.0.0.1:1"), zap.NewNop())
	_, err := catalog.ListProducts(context.Background())

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "catalog", apiErr.Service)
	assert.Zero(t, apiErr.Status, "transport failures carry no status")
}

func TestCartClient_AbsentCartIsEmptyState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no active cart"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	cart := NewCartClient(testConfig(srv.URL), zap.NewNop())
	got, err := cart.ActiveCart(context.Background())
	require.NoError(t, err, "an absent cart is a valid empty state")
	assert.Empty(t, got.Lines)
}

func TestCartClient_AddLineReturnsFullCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/items", r.URL.Path)
		assert.Equal(t, "p1", r.URL.Query().Get("productId"))
		assert.Equal(t, "3", r.URL.Query().Get("quantity"))
		json.NewEncoder(w).Encode(domain.Cart{
			ID: "cart-1",
			Lines: []domain.CartLine{
				{ID: "l1", Quantity: 3, Product: domain.Product{ID: "p1", Price: 9.99}},
			},
		})
	}))
	defer srv.Close()

	cart := NewCartClient(testConfig(srv.URL), zap.NewNop())
	got, err := cart.AddLine(context.Background(), "p1", 3)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 3, got.Lines[0].Quantity)
}

func TestCartClient_UpdateStaleLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"line not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	cart := NewCartClient(testConfig(srv.URL), zap.NewNop())
	_, err := cart.UpdateLine(context.Background(), "stale", 2)
	assert.ErrorIs(t, err, errors.ErrLineNotFound)
}

func TestCartClient_RemoveAbsentLineIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			http.Error(w, `{"error":"line not found"}`, http.StatusNotFound)
			return
		}
		// The follow-up cart fetch after the 404.
		assert.Equal(t, "/cart/active", r.URL.Path)
		json.NewEncoder(w).Encode(domain.Cart{ID: "cart-1"})
	}))
	defer srv.Close()

	cart := NewCartClient(testConfig(srv.URL), zap.NewNop())
	got, err := cart.RemoveLine(context.Background(), "gone")
	require.NoError(t, err, "removing an already-absent line succeeds")
	assert.Equal(t, "cart-1", got.ID)
}

func TestCartClient_StockRejectionIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(errorBody{Error: "only 2 left", Code: codeInsufficientStock})
	}))
	defer srv.Close()

	cart := NewCartClient(testConfig(srv.URL), zap.NewNop())
	_, err := cart.AddLine(context.Background(), "p1", 10)

	var stockErr *errors.ErrInsufficientStock
	assert.ErrorAs(t, err, &stockErr)
}

func TestClient_UnauthorizedMapsToReauthenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	cart := NewCartClient(testConfig(srv.URL), zap.NewNop())
	_, err := cart.Clear(context.Background())
	assert.ErrorIs(t, err, errors.ErrReauthenticate)
}

func TestOrderClient_CreateOrderCarriesIdempotencyKey(t *testing.T) {
	var gotReq CreateOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(domain.Order{ID: "order-7", Status: domain.OrderStatusPending})
	}))
	defer srv.Close()

	orders := NewOrderClient(testConfig(srv.URL), zap.NewNop())
	order, err := orders.CreateOrder(context.Background(), CreateOrderRequest{
		Items:       []domain.OrderItem{{ProductID: "p1", Quantity: 1, Price: 9.99}},
		TotalAmount: 9.99,
	})
	require.NoError(t, err)
	assert.Equal(t, "order-7", order.ID)
	assert.NotEmpty(t, gotReq.IdempotencyKey, "a key is generated when none is supplied")
}

func TestOrderClient_ServerRejectionSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"total mismatch"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	orders := NewOrderClient(testConfig(srv.URL), zap.NewNop())
	_, err := orders.CreateOrder(context.Background(), CreateOrderRequest{})

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Contains(t, apiErr.Message, "total mismatch")
}

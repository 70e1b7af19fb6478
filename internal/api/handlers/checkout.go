package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/commerce"
	"github.com/healthmart/storefront/internal/domain"
	"github.com/healthmart/storefront/internal/store"
	"github.com/healthmart/storefront/pkg/errors"
)

// CheckoutRequest is the checkout submission payload.
type CheckoutRequest struct {
	ShippingAddress domain.Address       `json:"shippingAddress" binding:"required"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod" binding:"required"`
}

// CheckoutResponse reports the created order.
type CheckoutResponse struct {
	OrderID string `json:"orderId"`
}

// HandleCheckout submits the current cart as an order. Unlike cart
// mutations this is synchronous: the caller needs the result to navigate.
func HandleCheckout(checkout *store.CheckoutCoordinator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if !req.PaymentMethod.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unsupported payment method"})
			return
		}

		orderID, err := checkout.Submit(c.Request.Context(), req.ShippingAddress, req.PaymentMethod)
		if err != nil {
			switch {
			case stderrors.Is(err, errors.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			case stderrors.Is(err, errors.ErrReauthenticate):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			default:
				logger.Error("Checkout failed", zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": "failed to place order"})
			}
			return
		}

		c.JSON(http.StatusCreated, CheckoutResponse{OrderID: orderID})
	}
}

// HandleListOrders returns the session's order history.
func HandleListOrders(orders *commerce.OrderClient, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListOrders(c.Request.Context())
		if err != nil {
			if stderrors.Is(err, errors.ErrReauthenticate) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "orders unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

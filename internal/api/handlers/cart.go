package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/domain"
	"github.com/healthmart/storefront/internal/store"
	"github.com/healthmart/storefront/pkg/errors"
)

// CartResponse is the reconciled cart plus its derived total.
type CartResponse struct {
	Cart  domain.Cart `json:"cart"`
	Total float64     `json:"total"`
}

// AddItemRequest asks for a product to be added to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest asks for a new quantity on an existing line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// HandleGetCart returns the last reconciled cart. Pending mutations are
// invisible until the server confirms them.
func HandleGetCart(cart *store.CartSynchronizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := cart.Snapshot()
		c.JSON(http.StatusOK, CartResponse{
			Cart:  snapshot,
			Total: snapshot.Total(),
		})
	}
}

// HandleAddCartItem validates locally and queues the add. Validation
// rejections are returned synchronously; the network mutation is
// asynchronous, so acceptance is a 202.
func HandleAddCartItem(cart *store.CartSynchronizer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := cart.AddItem(req.ProductID, req.Quantity); err != nil {
			c.JSON(validationStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.Status(http.StatusAccepted)
	}
}

// HandleUpdateCartItem queues a quantity edit for a line.
func HandleUpdateCartItem(cart *store.CartSynchronizer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := cart.SetQuantity(c.Param("id"), req.Quantity); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.Status(http.StatusAccepted)
	}
}

// HandleRemoveCartItem queues removal of a line.
func HandleRemoveCartItem(cart *store.CartSynchronizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart.RemoveItem(c.Param("id"))
		c.Status(http.StatusAccepted)
	}
}

// HandleClearCart queues removal of every line.
func HandleClearCart(cart *store.CartSynchronizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart.Clear()
		c.Status(http.StatusAccepted)
	}
}

// validationStatus maps local validation errors to HTTP statuses.
func validationStatus(err error) int {
	var (
		stockErr *errors.ErrInsufficientStock
		rxErr    *errors.ErrPrescriptionRequired
	)
	switch {
	case stderrors.As(err, &stockErr):
		return http.StatusConflict
	case stderrors.As(err, &rxErr):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/api/handlers"
	"github.com/healthmart/storefront/internal/commerce"
	"github.com/healthmart/storefront/internal/config"
	"github.com/healthmart/storefront/internal/store"
)

// Stores bundles the state-layer components the gateway exposes.
type Stores struct {
	Catalog       *store.CatalogStore
	Cart          *store.CartSynchronizer
	Checkout      *store.CheckoutCoordinator
	Notifications *store.NotificationQueue
	Orders        *commerce.OrderClient
	CatalogAPI    *commerce.CatalogClient
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, stores *Stores, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", handlers.HandleBrowseCatalog(stores.Catalog, logger))
			catalog.POST("/refresh", handlers.HandleRefreshCatalog(stores.Catalog, logger))
			catalog.GET("/categories", handlers.HandleListCategories(stores.Catalog))
			catalog.GET("/featured", handlers.HandleFeatured(stores.Catalog))
			catalog.GET("/suggestions", handlers.HandleSuggestions(stores.Catalog))
			catalog.GET("/:id", handlers.HandleGetProduct(stores.Catalog, stores.CatalogAPI, logger))
			catalog.GET("/:id/related", handlers.HandleRelatedProducts(stores.Catalog, logger))
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", handlers.HandleGetCart(stores.Cart))
			cart.POST("/items", handlers.HandleAddCartItem(stores.Cart, logger))
			cart.PUT("/items/:id", handlers.HandleUpdateCartItem(stores.Cart, logger))
			cart.DELETE("/items/:id", handlers.HandleRemoveCartItem(stores.Cart))
			cart.DELETE("", handlers.HandleClearCart(stores.Cart))
		}

		v1.POST("/checkout", handlers.HandleCheckout(stores.Checkout, logger))
		v1.GET("/orders", handlers.HandleListOrders(stores.Orders, logger))

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", handlers.HandleListNotifications(stores.Notifications))
			notifications.DELETE("/:id", handlers.HandleDismissNotification(stores.Notifications))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}

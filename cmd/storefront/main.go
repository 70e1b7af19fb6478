package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/api"
	"github.com/healthmart/storefront/internal/commerce"
	"github.com/healthmart/storefront/internal/config"
	"github.com/healthmart/storefront/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Service clients
	catalogAPI := commerce.NewCatalogClient(cfg.Catalog, logger)
	cartAPI := commerce.NewCartClient(cfg.Cart, logger)
	orderAPI := commerce.NewOrderClient(cfg.Orders, logger)

	// State layer, session-scoped
	notifications := store.NewNotificationQueue(logger)
	defer notifications.Close()

	catalog := store.NewCatalogStore(catalogAPI, notifications, logger)
	cart := store.NewCartSynchronizer(cartAPI, catalog, notifications, logger)
	defer cart.Close()

	checkout := store.NewCheckoutCoordinator(orderAPI, cart, notifications, logger)

	// Warm the catalog and cart; a failure here is retryable at runtime.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalog.Load(ctx); err != nil {
		logger.Warn("Initial catalog load failed", zap.Error(err))
	}
	if err := cart.Refresh(ctx); err != nil {
		logger.Warn("Initial cart refresh failed", zap.Error(err))
	}
	cancel()

	router := api.NewRouter(cfg, &api.Stores{
		Catalog:       catalog,
		Cart:          cart,
		Checkout:      checkout,
		Notifications: notifications,
		Orders:        orderAPI,
		CatalogAPI:    catalogAPI,
	}, logger)

	logger.Info("Starting storefront gateway", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}

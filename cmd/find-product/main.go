package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/commerce"
	"github.com/healthmart/storefront/internal/config"
	"github.com/healthmart/storefront/internal/domain"
	"github.com/healthmart/storefront/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-product/main.go <search term>")
		fmt.Println("Example: go run cmd/find-product/main.go \"pain relief\"")
		os.Exit(1)
	}

	term := strings.Join(os.Args[1:], " ")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Create catalog client and a local store over the fetched set
	catalogAPI := commerce.NewCatalogClient(cfg.Catalog, logger)
	notifications := store.NewNotificationQueue(logger)
	defer notifications.Close()

	catalog := store.NewCatalogStore(catalogAPI, notifications, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Printf("🔍 Searching for: %s\n\n", term)

	if err := catalog.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	results := catalog.ApplyQuery(domain.SearchQuery{
		Term:          term,
		SortBy:        domain.SortByName,
		SortDirection: domain.SortAscending,
	})

	if len(results) == 0 {
		fmt.Printf("❌ No products match %q.\n", term)
		os.Exit(1)
	}

	fmt.Printf("✅ Found %d product(s):\n\n", len(results))
	for _, p := range results {
		rx := ""
		if p.RequiresPrescription {
			rx = " [prescription required]"
		}
		fmt.Printf("  %s — %s (%s)%s\n", p.ID, p.Name, p.Category, rx)
		fmt.Printf("      %s | $%.2f | stock %d\n", p.Manufacturer, p.Price, p.Stock)
	}
}

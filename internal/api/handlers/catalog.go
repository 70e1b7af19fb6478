package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/commerce"
	"github.com/healthmart/storefront/internal/domain"
	"github.com/healthmart/storefront/internal/store"
	"github.com/healthmart/storefront/pkg/errors"
)

// BrowseResponse is one page of a filtered, sorted catalog view.
type BrowseResponse struct {
	Items      []domain.Product `json:"items"`
	TotalItems int              `json:"totalItems"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}

// HandleBrowseCatalog applies a search query from the URL parameters to the
// held product set and returns one page of results.
func HandleBrowseCatalog(catalog *store.CatalogStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := searchQueryFromParams(c)

		page := intParam(c, "page", 1)
		pageSize := intParam(c, "pageSize", 20)

		items := catalog.ApplyQuery(query)
		paged, err := store.Paginate(items, pageSize, page)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, BrowseResponse{
			Items:      paged,
			TotalItems: len(items),
			Page:       page,
			PageSize:   pageSize,
		})
	}
}

// HandleRefreshCatalog triggers a catalog load. A failure keeps the prior
// set; the client may retry by calling this endpoint again.
func HandleRefreshCatalog(catalog *store.CatalogStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Load(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load catalog"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": len(catalog.Snapshot())})
	}
}

// HandleListCategories returns the distinct category tags of the held set.
func HandleListCategories(catalog *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories()})
	}
}

// HandleFeatured returns the leading products in fetch order.
func HandleFeatured(catalog *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := intParam(c, "limit", 4)
		c.JSON(http.StatusOK, gin.H{"items": catalog.Featured(limit)})
	}
}

// HandleSuggestions serves type-ahead suggestions for a partial term.
func HandleSuggestions(catalog *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("term")
		limit := intParam(c, "limit", 10)
		c.JSON(http.StatusOK, gin.H{"items": catalog.Suggestions(term, limit)})
	}
}

// HandleGetProduct resolves a product from the held set, falling back to the
// catalog service for ids the last load has not seen.
func HandleGetProduct(catalog *store.CatalogStore, api *commerce.CatalogClient, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if product, ok := catalog.Product(id); ok {
			c.JSON(http.StatusOK, product)
			return
		}

		product, err := api.GetProduct(c.Request.Context(), id)
		if err != nil {
			if stderrors.Is(err, errors.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to fetch product", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleRelatedProducts returns catalog-derived recommendations for a focal
// product. No network access is involved.
func HandleRelatedProducts(catalog *store.CatalogStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		limit := intParam(c, "limit", 4)

		focal, ok := catalog.Product(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		related := store.Related(focal, catalog.Snapshot(), limit)
		c.JSON(http.StatusOK, gin.H{"items": related})
	}
}

// searchQueryFromParams rebuilds the ephemeral search query from URL
// parameters on every request.
func searchQueryFromParams(c *gin.Context) domain.SearchQuery {
	q := domain.SearchQuery{
		Term:         c.Query("q"),
		MinPrice:     floatParam(c, "minPrice", 0),
		MaxPrice:     floatParam(c, "maxPrice", 0),
		Prescription: domain.PrescriptionFilter(c.Query("prescription")),
		SortBy:       domain.SortKey(c.Query("sortBy")),
	}

	if categories := c.Query("categories"); categories != "" {
		q.Categories = strings.Split(categories, ",")
	}

	if c.Query("sortDir") == string(domain.SortDescending) {
		q.SortDirection = domain.SortDescending
	} else {
		q.SortDirection = domain.SortAscending
	}

	return q
}

func intParam(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func floatParam(c *gin.Context, name string, fallback float64) float64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

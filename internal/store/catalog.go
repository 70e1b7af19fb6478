package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/domain"
	"github.com/healthmart/storefront/pkg/errors"
)

// CatalogService is the slice of the catalog service the store consumes.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// CatalogStore holds the last-fetched product set and produces derived views
// (search, filter, sort, pagination) without re-querying the network. The
// held slice is only ever replaced wholesale, never mutated in place, so
// readers always see a fully-committed set.
type CatalogStore struct {
	mu       sync.RWMutex
	svc      CatalogService
	notifier *NotificationQueue
	logger   *zap.Logger

	products   []domain.Product
	categories []string
	loadErr    error

	// Monotonic request sequencing. A response whose sequence number is
	// lower than the last applied one is discarded, so an older, slower
	// load can never clobber a newer one.
	issued  uint64
	applied uint64
}

// NewCatalogStore creates an empty catalog store
func NewCatalogStore(svc CatalogService, notifier *NotificationQueue, logger *zap.Logger) *CatalogStore {
	return &CatalogStore{
		svc:      svc,
		notifier: notifier,
		logger:   logger,
	}
}

// Load fetches the full product set. On success the held set is replaced
// atomically and any prior load error is cleared. On failure the last good
// set is retained and a retryable error notification is pushed; retry is a
// user-initiated re-invocation, never automatic.
func (s *CatalogStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	products, err := s.svc.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		// A newer load already completed; this response is stale.
		s.logger.Debug("Discarding stale catalog response",
			zap.Uint64("seq", seq),
			zap.Uint64("applied", s.applied),
		)
		return nil
	}
	s.applied = seq

	if err != nil {
		s.loadErr = err
		s.logger.Error("Failed to load catalog", zap.Error(err))
		s.notifier.Error("Could not load products. Please try again.")
		return err
	}

	s.products = products
	s.categories = distinctCategories(products)
	s.loadErr = nil
	s.logger.Info("Catalog loaded", zap.Int("products", len(products)))
	return nil
}

// Snapshot returns the held product set in fetch order.
func (s *CatalogStore) Snapshot() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product resolves a product from the held set by id.
func (s *CatalogStore) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Categories returns the distinct category tags of the held set, sorted.
func (s *CatalogStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Featured returns the first n products in fetch order.
func (s *CatalogStore) Featured(n int) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.products) {
		n = len(s.products)
	}
	if n < 0 {
		n = 0
	}
	out := make([]domain.Product, n)
	copy(out, s.products[:n])
	return out
}

// LoadErr returns the error recorded by the most recent applied load, or
// nil after a successful load.
func (s *CatalogStore) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// ApplyQuery recomputes a filtered, sorted view over the held set. Filtering
// is conjunctive; sorting is stable so ties keep fetch order and pagination
// stays reproducible.
func (s *CatalogStore) ApplyQuery(q domain.SearchQuery) []domain.Product {
	s.mu.RLock()
	snapshot := s.products
	s.mu.RUnlock()

	result := make([]domain.Product, 0, len(snapshot))
	for _, p := range snapshot {
		if matchesQuery(p, q) {
			result = append(result, p)
		}
	}

	if q.SortBy != "" {
		compare := comparatorFor(q.SortBy)
		descending := q.SortDirection == domain.SortDescending
		sort.SliceStable(result, func(i, j int) bool {
			c := compare(result[i], result[j])
			if descending {
				return c > 0
			}
			return c < 0
		})
	}

	return result
}

// Suggestions returns up to limit products matching the free-text predicate,
// for type-ahead. The held set is not touched.
func (s *CatalogStore) Suggestions(term string, limit int) []domain.Product {
	if term == "" || limit <= 0 {
		return nil
	}

	s.mu.RLock()
	snapshot := s.products
	s.mu.RUnlock()

	out := make([]domain.Product, 0, limit)
	for _, p := range snapshot {
		if matchesTerm(p, term) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Paginate slices an already-filtered and sorted sequence. Page numbers are
// 1-indexed; a page beyond the last clamps to the last page.
func Paginate(items []domain.Product, pageSize, pageNumber int) ([]domain.Product, error) {
	if pageSize <= 0 {
		return nil, errors.ErrInvalidPageSize
	}
	if len(items) == 0 {
		return []domain.Product{}, nil
	}

	lastPage := (len(items) + pageSize - 1) / pageSize
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > lastPage {
		pageNumber = lastPage
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	out := make([]domain.Product, end-start)
	copy(out, items[start:end])
	return out, nil
}

// matchesQuery is the conjunctive filter predicate: every active filter
// must match.
func matchesQuery(p domain.Product, q domain.SearchQuery) bool {
	if q.Term != "" && !matchesTerm(p, q.Term) {
		return false
	}

	if len(q.Categories) > 0 {
		found := false
		for _, c := range q.Categories {
			if p.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if p.Price < q.MinPrice {
		return false
	}
	if q.MaxPrice > 0 && p.Price > q.MaxPrice {
		return false
	}

	switch q.Prescription {
	case domain.PrescriptionRequired:
		if !p.RequiresPrescription {
			return false
		}
	case domain.PrescriptionNotRequired:
		if p.RequiresPrescription {
			return false
		}
	}

	return true
}

// matchesTerm is a case-insensitive substring match against name,
// description and manufacturer; any one field matching is sufficient.
func matchesTerm(p domain.Product, term string) bool {
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), t) ||
		strings.Contains(strings.ToLower(p.Description), t) ||
		strings.Contains(strings.ToLower(p.Manufacturer), t)
}

// comparatorFor returns the named comparator for a sort key. Comparators are
// values so the stability and tie-break guarantees can be tested directly.
func comparatorFor(key domain.SortKey) func(a, b domain.Product) int {
	switch key {
	case domain.SortByPrice:
		return compareByPrice
	case domain.SortByCategory:
		return compareByCategory
	default:
		return compareByName
	}
}

func compareByName(a, b domain.Product) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

func compareByPrice(a, b domain.Product) int {
	switch {
	case a.Price < b.Price:
		return -1
	case a.Price > b.Price:
		return 1
	default:
		return 0
	}
}

func compareByCategory(a, b domain.Product) int {
	return strings.Compare(a.Category, b.Category)
}

func distinctCategories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

package store

import (
	"context"
	stderrors "errors"
	"sync"

	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/domain"
	"github.com/healthmart/storefront/pkg/errors"
)

// CartService is the slice of the cart service the synchronizer consumes.
// Every mutation returns the full updated cart, never a delta.
type CartService interface {
	ActiveCart(ctx context.Context) (*domain.Cart, error)
	AddLine(ctx context.Context, productID string, quantity int) (*domain.Cart, error)
	UpdateLine(ctx context.Context, lineID string, quantity int) (*domain.Cart, error)
	RemoveLine(ctx context.Context, lineID string) (*domain.Cart, error)
	Clear(ctx context.Context) (*domain.Cart, error)
}

type mutationKind int

const (
	mutationAdd mutationKind = iota
	mutationSet
	mutationRemove
	mutationClear
)

// mutation is one queued cart change. Exactly one mutation is in flight at
// any time; queued mutations targeting the same line are coalesced.
type mutation struct {
	kind      mutationKind
	productID string
	lineID    string
	quantity  int
}

// CartSynchronizer is the single point of truth for what the client believes
// the cart contains. User mutations are validated locally, queued, and
// dispatched one at a time; on every successful response the whole cart is
// replaced by the server's representation, never hand-patched. On failure
// the last reconciled cart stands.
type CartSynchronizer struct {
	svc      CartService
	catalog  *CatalogStore
	notifier *NotificationQueue
	logger   *zap.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	cart     domain.Cart
	queue    []mutation
	inflight bool
	closed   bool

	// idleCh is closed whenever the queue is drained with nothing in
	// flight, and replaced when work arrives. Wait blocks on it.
	idle   bool
	idleCh chan struct{}

	onReauth func()
}

// NewCartSynchronizer creates a synchronizer and starts its dispatcher.
// Callers must Close it when the session ends.
func NewCartSynchronizer(svc CartService, catalog *CatalogStore, notifier *NotificationQueue, logger *zap.Logger) *CartSynchronizer {
	s := &CartSynchronizer{
		svc:      svc,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
		idle:     true,
		idleCh:   make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	close(s.idleCh)
	go s.run()
	return s
}

// OnReauthenticate registers a hook invoked when a mutation fails because
// the session credential expired. The failure is still reported through the
// notification queue; the hook is the distinct escalation path.
func (s *CartSynchronizer) OnReauthenticate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReauth = fn
}

// Snapshot returns the last reconciled cart. A mutation that is still
// pending is invisible here until the server confirms it.
func (s *CartSynchronizer) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// AddItem requests a new line for the product. Prescription-only products
// and quantities beyond the known stock are rejected locally, before any
// network call. If the product cannot be resolved from the catalog the
// request proceeds and the server's validation is trusted. A line that
// already exists for the product is merged server-side.
func (s *CartSynchronizer) AddItem(productID string, quantity int) error {
	if quantity < 1 {
		s.notifier.Warning("Quantity must be at least 1.")
		return errors.ErrInvalidQuantity
	}

	if product, ok := s.catalog.Product(productID); ok {
		if product.RequiresPrescription {
			s.notifier.Warning("This product requires a prescription.")
			return &errors.ErrPrescriptionRequired{
				ProductID:   product.ID,
				ProductName: product.Name,
			}
		}
		if quantity > product.Stock {
			s.notifier.Error("Requested quantity exceeds available stock.")
			return &errors.ErrInsufficientStock{
				ProductID: product.ID,
				Requested: quantity,
				Available: product.Stock,
			}
		}
	}

	s.enqueue(mutation{kind: mutationAdd, productID: productID, quantity: quantity})
	return nil
}

// SetQuantity requests a new quantity for an existing line. Quantities below
// 1 are rejected locally; deletion goes through RemoveItem. Rapid edits on
// the same line are coalesced so only the latest quantity is sent.
func (s *CartSynchronizer) SetQuantity(lineID string, quantity int) error {
	if quantity < 1 {
		s.notifier.Warning("Quantity must be at least 1. Remove the item instead.")
		return errors.ErrInvalidQuantity
	}

	s.enqueue(mutation{kind: mutationSet, lineID: lineID, quantity: quantity})
	return nil
}

// RemoveItem requests removal of a line. Removing an already-absent line is
// a no-op once the server confirms.
func (s *CartSynchronizer) RemoveItem(lineID string) {
	s.enqueue(mutation{kind: mutationRemove, lineID: lineID})
}

// Clear requests removal of every line in one request. Used for explicit
// user action and after checkout.
func (s *CartSynchronizer) Clear() {
	s.enqueue(mutation{kind: mutationClear})
}

// Refresh pulls the active cart from the server. The fetched cart is
// discarded if a mutation is pending or in flight, since that mutation's
// full-cart response will supersede it.
func (s *CartSynchronizer) Refresh(ctx context.Context) error {
	cart, err := s.svc.ActiveCart(ctx)
	if err != nil {
		s.logger.Error("Failed to refresh cart", zap.Error(err))
		s.reportFailure("load your cart", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight || len(s.queue) > 0 {
		return nil
	}
	s.cart = cart.Clone()
	return nil
}

// Wait blocks until every mutation queued at call time has resolved.
func (s *CartSynchronizer) Wait(ctx context.Context) error {
	s.mu.Lock()
	ch := s.idleCh
	s.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the dispatcher. Queued mutations are dropped.
func (s *CartSynchronizer) Close() {
	s.mu.Lock()
	s.closed = true
	s.queue = nil
	if !s.inflight {
		s.setIdleLocked()
	}
	s.cond.Broadcast()
	s.mu.Unlock()
}

// enqueue adds a mutation to the queue, applying the coalescing rules, and
// wakes the dispatcher.
func (s *CartSynchronizer) enqueue(m mutation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	switch m.kind {
	case mutationSet:
		// A later edit on the same line replaces the queued one; a queued
		// removal of that line absorbs the edit entirely.
		for i, queued := range s.queue {
			if queued.lineID != m.lineID {
				continue
			}
			if queued.kind == mutationSet {
				s.queue[i].quantity = m.quantity
				return
			}
			if queued.kind == mutationRemove {
				return
			}
		}
	case mutationRemove:
		// Removal supersedes a queued quantity edit on the same line.
		for i, queued := range s.queue {
			if queued.lineID == m.lineID && queued.kind == mutationSet {
				s.queue = append(s.queue[:i], s.queue[i+1:]...)
				break
			}
		}
	case mutationClear:
		// Clearing makes every queued mutation moot.
		s.queue = s.queue[:0]
	}

	s.queue = append(s.queue, m)
	s.setBusyLocked()
	s.cond.Signal()
}

// run is the dispatcher: it drains the queue one mutation at a time so the
// server never observes out-of-order updates for this cart.
func (s *CartSynchronizer) run() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		m := s.queue[0]
		s.queue = s.queue[1:]
		s.inflight = true
		s.mu.Unlock()

		s.dispatch(m)

		s.mu.Lock()
		s.inflight = false
		if len(s.queue) == 0 {
			s.setIdleLocked()
		}
		s.mu.Unlock()
	}
}

// dispatch performs one network request and reconciles the result.
func (s *CartSynchronizer) dispatch(m mutation) {
	ctx := context.Background()

	var (
		cart *domain.Cart
		err  error
	)

	switch m.kind {
	case mutationAdd:
		cart, err = s.svc.AddLine(ctx, m.productID, m.quantity)
	case mutationSet:
		cart, err = s.svc.UpdateLine(ctx, m.lineID, m.quantity)
	case mutationRemove:
		cart, err = s.svc.RemoveLine(ctx, m.lineID)
	case mutationClear:
		cart, err = s.svc.Clear(ctx)
	}

	if err != nil {
		s.logger.Warn("Cart mutation failed",
			zap.Int("kind", int(m.kind)),
			zap.String("lineId", m.lineID),
			zap.Error(err),
		)
		s.reportFailure(describeMutation(m), err)
		return
	}

	s.mu.Lock()
	s.cart = cart.Clone()
	s.mu.Unlock()

	if m.kind == mutationAdd {
		s.notifier.Success("Added to cart.")
	}
}

// reportFailure maps an operation failure onto user-facing notifications.
// The failed mutation is never silently retried.
func (s *CartSynchronizer) reportFailure(operation string, err error) {
	var (
		stockErr *errors.ErrInsufficientStock
		rxErr    *errors.ErrPrescriptionRequired
	)

	switch {
	case stderrors.Is(err, errors.ErrReauthenticate):
		s.notifier.Warning("Your session has expired. Please log in again.")
		s.mu.Lock()
		fn := s.onReauth
		s.mu.Unlock()
		if fn != nil {
			fn()
		}
	case stderrors.Is(err, errors.ErrLineNotFound):
		// The line is already gone server-side; treated as removed.
		// No user-facing message.
	case stderrors.As(err, &stockErr):
		s.notifier.Error("Requested quantity exceeds available stock.")
	case stderrors.As(err, &rxErr):
		s.notifier.Warning("This product requires a prescription.")
	default:
		s.notifier.Error("Could not " + operation + ". Please try again.")
	}
}

func describeMutation(m mutation) string {
	switch m.kind {
	case mutationAdd:
		return "add the item to your cart"
	case mutationSet:
		return "update the item quantity"
	case mutationRemove:
		return "remove the item from your cart"
	default:
		return "clear your cart"
	}
}

func (s *CartSynchronizer) setBusyLocked() {
	if s.idle {
		s.idle = false
		s.idleCh = make(chan struct{})
	}
}

func (s *CartSynchronizer) setIdleLocked() {
	if !s.idle {
		s.idle = true
		close(s.idleCh)
	}
}

package errors

import (
	"errors"
	"fmt"
)

// Local validation errors. These are raised before any network call and are
// never retried.
var (
	// ErrInvalidQuantity is returned when a cart mutation carries a quantity
	// below 1. Callers that want to delete a line must use RemoveItem.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrInvalidPageSize is returned by pagination for a page size <= 0.
	ErrInvalidPageSize = errors.New("page size must be positive")

	// ErrEmptyCart is returned when checkout is attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrProductNotFound is returned when the catalog service has no product
	// with the requested id. Not retryable.
	ErrProductNotFound = errors.New("product not found")

	// ErrLineNotFound is returned by the cart service for a stale line id.
	ErrLineNotFound = errors.New("cart line not found")

	// ErrReauthenticate signals that the session credential was rejected and
	// the user must log in again. Escalated distinctly from generic failures.
	ErrReauthenticate = errors.New("session expired, reauthentication required")
)

// ErrPrescriptionRequired is returned when a product flagged as
// prescription-only is added to the cart. The add is rejected locally.
type ErrPrescriptionRequired struct {
	ProductID   string
	ProductName string
}

func (e *ErrPrescriptionRequired) Error() string {
	return fmt.Sprintf("product %q requires a prescription", e.ProductName)
}

// ErrInsufficientStock is returned when the requested quantity exceeds the
// stock known to the catalog, or when the cart service rejects for stock.
type ErrInsufficientStock struct {
	ProductID string
	Requested int
	Available int
}

func (e *ErrInsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// APIError is a server-rejected or transport-level failure from one of the
// remote services. Status is zero for pure transport failures.
type APIError struct {
	Service string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s service: %s", e.Service, e.Message)
	}
	return fmt.Sprintf("%s service: status %d: %s", e.Service, e.Status, e.Message)
}

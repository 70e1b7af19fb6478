package domain

// Severity classifies a notification for presentation.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// PaymentMethod is the set of payment options accepted at checkout.
type PaymentMethod string

const (
	PaymentCredit         PaymentMethod = "credit"
	PaymentPaypal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cod"
)

// IsValid checks if the payment method is one the order service accepts.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCredit, PaymentPaypal, PaymentCashOnDelivery:
		return true
	default:
		return false
	}
}

// OrderStatus represents the status of a submitted order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return newStatus == OrderStatusProcessing ||
			newStatus == OrderStatusCancelled
	case OrderStatusProcessing:
		return newStatus == OrderStatusShipped ||
			newStatus == OrderStatusCancelled
	case OrderStatusShipped:
		return newStatus == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}

// SortKey selects the comparator applied to catalog query results.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByPrice    SortKey = "price"
	SortByCategory SortKey = "category"
)

// SortDirection flips the chosen comparator.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// PrescriptionFilter narrows a search to prescription or over-the-counter
// products. The zero value matches everything.
type PrescriptionFilter string

const (
	PrescriptionAny         PrescriptionFilter = ""
	PrescriptionRequired    PrescriptionFilter = "required"
	PrescriptionNotRequired PrescriptionFilter = "not-required"
)

// SearchQuery is the client-local, ephemeral description of one catalog
// view. It is rebuilt on every user interaction, never persisted.
type SearchQuery struct {
	Term          string
	Categories    []string
	MinPrice      float64
	MaxPrice      float64 // zero means unbounded
	Prescription  PrescriptionFilter
	SortBy        SortKey // empty means keep fetch order
	SortDirection SortDirection
}

package domain

// Product is a catalog entry as returned by the catalog service. The client
// treats it as immutable; a changed product only ever arrives via a re-fetch.
type Product struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	Category             string  `json:"category"`
	Manufacturer         string  `json:"manufacturer"`
	Price                float64 `json:"price"`
	Stock                int     `json:"stock"`
	RequiresPrescription bool    `json:"requiresPrescription"`
	ImageURL             string  `json:"imageUrl,omitempty"`
	DosageForm           string  `json:"dosageForm,omitempty"`
	Strength             string  `json:"strength,omitempty"`
}

// CartLine is one product-quantity pairing within a cart. The line id is
// assigned by the cart service; the embedded product snapshot carries the
// price that is authoritative for billing display.
type CartLine struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the last server-reconciled cart representation.
type Cart struct {
	ID    string     `json:"id,omitempty"`
	Lines []CartLine `json:"items"`
}

// Total sums quantity times the cart's own embedded product price. The
// catalog price may have diverged; the cart price wins for display.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += float64(line.Quantity) * line.Product.Price
	}
	return total
}

// Line returns the cart line with the given id, if present.
func (c *Cart) Line(lineID string) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.ID == lineID {
			return line, true
		}
	}
	return CartLine{}, false
}

// LineForProduct returns the cart line referencing the given product id.
// A cart never holds two lines for the same product.
func (c *Cart) LineForProduct(productID string) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.Product.ID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}

// Clone returns a deep copy so readers never alias the reconciled state.
func (c *Cart) Clone() Cart {
	out := Cart{ID: c.ID}
	if c.Lines != nil {
		out.Lines = make([]CartLine, len(c.Lines))
		copy(out.Lines, c.Lines)
	}
	return out
}

// Address is a shipping destination captured at checkout.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode"`
}

// OrderItem captures a cart line at submission time. Price is the cart's
// embedded price, frozen so a catalog price change cannot race the order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is the order service's view of a submitted order.
type Order struct {
	ID              string        `json:"id"`
	Items           []OrderItem   `json:"items"`
	ShippingAddress Address       `json:"shippingAddress"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	TotalAmount     float64       `json:"totalAmount"`
	Status          OrderStatus   `json:"status"`
}

// Notification is a transient user-facing status message.
type Notification struct {
	ID       int64    `json:"id"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

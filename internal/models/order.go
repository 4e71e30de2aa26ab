package models

import "time"

// OrderStatus enumerates the order lifecycle states. Status is the only
// field an operator mutates after creation.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an order header row. Created in status processing together with
// its lines in one atomic unit.
type Order struct {
	ID        int         `db:"id" json:"id"`
	AccountID int         `db:"account_id" json:"accountId"`
	Total     float64     `db:"total" json:"total"`
	Address   string      `db:"address" json:"address"`
	Status    OrderStatus `db:"status" json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`

	// Joined fields for admin listings.
	AccountName  *string `db:"account_name" json:"accountName,omitempty"`
	AccountEmail *string `db:"account_email" json:"accountEmail,omitempty"`

	Lines []OrderLine `db:"-" json:"lines,omitempty"`
}

// OrderLine records a single product's quantity and locked-in unit price
// within an order. Rows are immutable after creation; UnitPrice is the cart
// snapshot price, never recomputed from the catalog.
type OrderLine struct {
	OrderID        int     `db:"order_id" json:"orderId"`
	ProductID      int     `db:"product_id" json:"productId"`
	Quantity       int     `db:"quantity" json:"quantity"`
	UnitPrice      float64 `db:"unit_price" json:"unitPrice"`
	VariationID    *int    `db:"variation_id" json:"variationId,omitempty"`
	VariationLabel *string `db:"variation_label" json:"variationLabel,omitempty"`

	// Joined field for history views.
	ProductName *string `db:"product_name" json:"productName,omitempty"`
}

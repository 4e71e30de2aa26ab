package models

// CartItem is one line of a shopping cart. UnitPrice is the catalog price at
// the moment the product was added; it is carried through to the order line
// unchanged so later catalog price edits never alter an in-flight cart.
type CartItem struct {
	ProductID      int     `json:"productId"`
	Name           string  `json:"name"`
	Brand          string  `json:"brand,omitempty"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
	VariationID    *int    `json:"variationId,omitempty"`
	VariationLabel string  `json:"variationLabel,omitempty"`
}

// Cart is an ordered set of cart items keyed by product id.
type Cart []CartItem

// Add merges an item into the cart. An already-present product has its
// quantity incremented and keeps its originally recorded unit price.
func (c Cart) Add(item CartItem) Cart {
	for i, existing := range c {
		if existing.ProductID == item.ProductID {
			c[i].Quantity += item.Quantity
			return c
		}
	}
	return append(c, item)
}

// Remove drops the line for the given product id, if present.
func (c Cart) Remove(productID int) Cart {
	out := c[:0]
	for _, item := range c {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// SetQuantity updates a line's quantity. A quantity <= 0 removes the line.
func (c Cart) SetQuantity(productID, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	for i, item := range c {
		if item.ProductID == productID {
			c[i].Quantity = quantity
			break
		}
	}
	return c
}

// Subtotal sums quantity * unit price over all lines.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, item := range c {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// TotalItems returns the total unit count across all lines.
func (c Cart) TotalItems() int {
	n := 0
	for _, item := range c {
		n += item.Quantity
	}
	return n
}

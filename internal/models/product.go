package models

import "time"

// Product represents a catalog product. Rating and ReviewCount are derived
// from approved reviews and are only ever written by the review aggregation
// transaction, never edited directly.
type Product struct {
	ID            int      `db:"id" json:"id"`
	Name          string   `db:"name" json:"name"`
	Brand         string   `db:"brand" json:"brand"`
	Price         float64  `db:"price" json:"price"`
	OriginalPrice *float64 `db:"original_price" json:"originalPrice,omitempty"`
	Stock         int      `db:"stock" json:"stock"`
	Rating        int      `db:"rating" json:"rating"`
	ReviewCount   int      `db:"review_count" json:"reviewCount"`
	HasVariations bool     `db:"has_variations" json:"hasVariations"`
	CreatedAt     time.Time `db:"created_at" json:"-"`

	// Populated via a second query, not a column.
	Variations []Variation `db:"-" json:"variations,omitempty"`
}

// Variation is a purchasable option of a product (e.g. a size). When a
// product has variations, variation-level stock supersedes product-level
// stock for purchase decisions.
type Variation struct {
	ID        int    `db:"id" json:"id"`
	ProductID int    `db:"product_id" json:"productId"`
	Label     string `db:"label" json:"label"`
	Stock     int    `db:"stock" json:"stock"`
}

// AvailableStock returns the stock relevant for a purchase decision: the
// selected variation's stock when the product has variations, otherwise the
// product-level stock.
func (p *Product) AvailableStock(variationID *int) int {
	if !p.HasVariations || variationID == nil {
		return p.Stock
	}
	for _, v := range p.Variations {
		if v.ID == *variationID {
			return v.Stock
		}
	}
	return 0
}

package models

import "time"

// DiscountType enumerates the supported coupon discount kinds.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is a discount rule. Code is stored upper-cased and unique.
type Coupon struct {
	Code      string       `db:"code" json:"code"`
	Type      DiscountType `db:"type" json:"type"`
	Value     float64      `db:"value" json:"value"`
	ExpiresAt *time.Time   `db:"expires_at" json:"expiresAt,omitempty"`
	Active    bool         `db:"active" json:"active"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
}

// Discount returns the discount amount this rule yields for the given
// subtotal. The caller caps the final total at zero; the rule itself never
// returns more context than the raw amount.
func (c *Coupon) Discount(subtotal float64) float64 {
	if c.Type == DiscountPercentage {
		return subtotal * c.Value / 100
	}
	return c.Value
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCouponDiscountPercentage(t *testing.T) {
	coupon := &Coupon{Code: "BEAUTY10", Type: DiscountPercentage, Value: 10}

	assert.Equal(t, 20.0, coupon.Discount(200))
	assert.Equal(t, 0.0, coupon.Discount(0))
}

func TestCouponDiscountFixed(t *testing.T) {
	coupon := &Coupon{Code: "WELCOME15", Type: DiscountFixed, Value: 15}

	// Fixed discounts ignore the subtotal entirely; the caller floors the
	// final total at zero.
	assert.Equal(t, 15.0, coupon.Discount(200))
	assert.Equal(t, 15.0, coupon.Discount(10))
}

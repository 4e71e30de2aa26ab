package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOrderSummary(t *testing.T) {
	msg := BuildOrderSummary(OrderSummary{
		OrderID:      42,
		CustomerName: "Ana Souza",
		Phone:        "+55 11 99999-0000",
		Address:      "Rua das Flores 12",
		Lines: []SummaryLine{
			{Quantity: 2, Name: "Vitamin C Serum", UnitPrice: 89.90},
			{Quantity: 1, Name: "Day Cream", Variation: "50ml", UnitPrice: 59.90},
		},
		CouponCode: "BEAUTY10",
		Discount:   23.97,
		Total:      215.73,
	})

	assert.Contains(t, msg, "*New order #42*")
	assert.Contains(t, msg, "Customer: Ana Souza")
	assert.Contains(t, msg, "Phone: +55 11 99999-0000")
	assert.Contains(t, msg, "Address: Rua das Flores 12")
	assert.Contains(t, msg, "- 2x Vitamin C Serum - R$ 89.90")
	assert.Contains(t, msg, "- 1x Day Cream (50ml) - R$ 59.90")
	assert.Contains(t, msg, "Coupon: BEAUTY10 (-R$ 23.97)")
	assert.Contains(t, msg, "*Total: R$ 215.73*")
}

func TestBuildOrderSummaryOmitsEmptyFields(t *testing.T) {
	msg := BuildOrderSummary(OrderSummary{
		OrderID: 7,
		Address: "Av. Central 100",
		Lines:   []SummaryLine{{Quantity: 1, Name: "Lipstick", UnitPrice: 25.00}},
		Total:   25.00,
	})

	assert.NotContains(t, msg, "Customer:")
	assert.NotContains(t, msg, "Coupon:")
}

package whatsapp

import (
	"fmt"
	"strings"
)

// SummaryLine is one order line in a notification message.
type SummaryLine struct {
	Quantity  int
	Name      string
	Variation string
	UnitPrice float64
}

// OrderSummary carries everything the notification message renders.
type OrderSummary struct {
	OrderID      int
	CustomerName string
	Phone        string
	Address      string
	Lines        []SummaryLine
	CouponCode   string
	Discount     float64
	Total        float64
}

// BuildOrderSummary renders the plain-text order message sent to the store
// owner after checkout.
func BuildOrderSummary(s OrderSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*New order #%d*\n\n", s.OrderID)
	if s.CustomerName != "" {
		fmt.Fprintf(&b, "Customer: %s\n", s.CustomerName)
	}
	if s.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", s.Phone)
	}
	fmt.Fprintf(&b, "Address: %s\n\n", s.Address)

	b.WriteString("Items:\n")
	for _, line := range s.Lines {
		if line.Variation != "" {
			fmt.Fprintf(&b, "- %dx %s (%s) - R$ %.2f\n", line.Quantity, line.Name, line.Variation, line.UnitPrice)
		} else {
			fmt.Fprintf(&b, "- %dx %s - R$ %.2f\n", line.Quantity, line.Name, line.UnitPrice)
		}
	}

	if s.CouponCode != "" {
		fmt.Fprintf(&b, "\nCoupon: %s (-R$ %.2f)\n", s.CouponCode, s.Discount)
	}
	fmt.Fprintf(&b, "\n*Total: R$ %.2f*", s.Total)

	return b.String()
}

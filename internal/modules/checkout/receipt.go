package checkout

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mkamanga/sokoni-backend/internal/modules/order"
)

// composeReceipt renders the consolidated plain-text receipt for one
// checkout pass: one section per shop order, a section for failed
// lines when any exist, and a grand total including shipping.
func composeReceipt(buyerName string, orders []*order.Order, shopNames map[uuid.UUID]string, failed []FailedItem, shippingCost float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s,\n\nThank you for your order.\n", buyerName)

	grandTotal := 0.0
	for _, o := range orders {
		name := shopNames[o.ShopID]
		if name == "" {
			name = o.ShopID.String()
		}
		fmt.Fprintf(&b, "\n%s (order %s)\n", name, o.OrderNumber)
		for _, l := range o.Lines {
			fmt.Fprintf(&b, "  %dx %s", l.Quantity, l.Title)
			if l.Color != "" || l.Size != "" {
				fmt.Fprintf(&b, " (%s / %s)", l.Color, l.Size)
			}
			fmt.Fprintf(&b, " @ %.2f = %.2f\n", l.UnitPrice, l.UnitPrice*float64(l.Quantity))
		}
		fmt.Fprintf(&b, "  Subtotal: %.2f\n", o.TotalPrice)
		grandTotal += o.TotalPrice
	}

	if len(failed) > 0 {
		b.WriteString("\nNot fulfilled:\n")
		for _, f := range failed {
			fmt.Fprintf(&b, "  %dx %s", f.Requested, f.Title)
			if f.Color != "" || f.Size != "" {
				fmt.Fprintf(&b, " (%s / %s)", f.Color, f.Size)
			}
			fmt.Fprintf(&b, " - only %d available\n", f.Available)
		}
	}

	fmt.Fprintf(&b, "\nShipping: %.2f\n", shippingCost)
	fmt.Fprintf(&b, "Total: %.2f\n", round2(grandTotal+shippingCost))

	return b.String()
}

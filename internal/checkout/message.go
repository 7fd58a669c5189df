package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
)

// vendorMessage renders the prefilled WhatsApp text a buyer hands to the
// vendor after checkout.
func vendorMessage(req Request, order VendorOrderSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*New Order from %s*\n", req.BuyerName)
	fmt.Fprintf(&b, "Delivery to: %s\n", req.DeliveryAddress)
	fmt.Fprintf(&b, "Phone: %s\n\n", req.BuyerPhone)

	b.WriteString("*Ordered Items:*\n")
	for _, item := range order.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "- %s x%d (R%s)\n", item.ProductName, item.Quantity, lineTotal.StringFixed(2))
	}

	fmt.Fprintf(&b, "\n*Total: R%s*\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "*Payment: %s*", req.PaymentMethod)
	if req.PaymentMethod == enums.PaymentMethodCash && req.PaymentAmount != nil {
		fmt.Fprintf(&b, "\n*Customer will pay with: R%s*", req.PaymentAmount.StringFixed(2))
	}
	return b.String()
}

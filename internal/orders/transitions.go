package orders

import "github.com/blissmahlathi/campusmarket-backend/pkg/enums"

// vendorTransitions is the forward chain a vendor may walk an order
// through. Admins are not bound by it.
var vendorTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:   {enums.OrderStatusConfirmed, enums.OrderStatusRejected},
	enums.OrderStatusConfirmed: {enums.OrderStatusPreparing},
	enums.OrderStatusPreparing: {enums.OrderStatusReady},
	enums.OrderStatusReady:     {enums.OrderStatusCompleted},
}

// CanVendorTransition reports whether a vendor may move an order from one
// status to another.
func CanVendorTransition(from, to enums.OrderStatus) bool {
	for _, candidate := range vendorTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

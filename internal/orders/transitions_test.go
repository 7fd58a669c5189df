package orders

import (
	"testing"

	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
)

func TestVendorTransitionChain(t *testing.T) {
	legal := []struct {
		from enums.OrderStatus
		to   enums.OrderStatus
	}{
		{enums.OrderStatusPending, enums.OrderStatusConfirmed},
		{enums.OrderStatusPending, enums.OrderStatusRejected},
		{enums.OrderStatusConfirmed, enums.OrderStatusPreparing},
		{enums.OrderStatusPreparing, enums.OrderStatusReady},
		{enums.OrderStatusReady, enums.OrderStatusCompleted},
	}
	for _, tt := range legal {
		if !CanVendorTransition(tt.from, tt.to) {
			t.Fatalf("expected vendor transition %s -> %s to be legal", tt.from, tt.to)
		}
	}
}

func TestVendorTransitionRejectsSkipsAndCancels(t *testing.T) {
	illegal := []struct {
		from enums.OrderStatus
		to   enums.OrderStatus
	}{
		{enums.OrderStatusPending, enums.OrderStatusReady},
		{enums.OrderStatusPending, enums.OrderStatusCompleted},
		{enums.OrderStatusConfirmed, enums.OrderStatusCompleted},
		{enums.OrderStatusConfirmed, enums.OrderStatusRejected},
		{enums.OrderStatusPending, enums.OrderStatusCancelled},
		{enums.OrderStatusPreparing, enums.OrderStatusCancelled},
		{enums.OrderStatusReady, enums.OrderStatusPending},
	}
	for _, tt := range illegal {
		if CanVendorTransition(tt.from, tt.to) {
			t.Fatalf("expected vendor transition %s -> %s to be rejected", tt.from, tt.to)
		}
	}
}

func TestVendorTransitionTerminalStatesAreFinal(t *testing.T) {
	terminals := []enums.OrderStatus{
		enums.OrderStatusCompleted,
		enums.OrderStatusCancelled,
		enums.OrderStatusRejected,
	}
	targets := []enums.OrderStatus{
		enums.OrderStatusPending,
		enums.OrderStatusConfirmed,
		enums.OrderStatusPreparing,
		enums.OrderStatusReady,
		enums.OrderStatusCompleted,
	}
	for _, from := range terminals {
		for _, to := range targets {
			if CanVendorTransition(from, to) {
				t.Fatalf("expected no vendor transition out of terminal state %s", from)
			}
		}
	}
}

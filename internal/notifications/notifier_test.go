package notifications

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/blissmahlathi/campusmarket-backend/pkg/db/models"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
	"github.com/blissmahlathi/campusmarket-backend/pkg/logger"
	"github.com/blissmahlathi/campusmarket-backend/pkg/pagination"
)

type stubService struct {
	dispatched chan DispatchInput
	err        error
}

func (s *stubService) Dispatch(ctx context.Context, input DispatchInput) error {
	s.dispatched <- input
	return s.err
}

func (s *stubService) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*NotificationList, error) {
	return &NotificationList{}, nil
}

func (s *stubService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestNotifierDispatchesInBackground(t *testing.T) {
	svc := &stubService{dispatched: make(chan DispatchInput, 1)}
	notifier := NewNotifier(svc, quietLogger())

	order := &models.Order{ID: uuid.New()}
	notifier.Notify(context.Background(), DispatchInput{Order: order, Type: enums.NotificationTypeOrderApproved})

	select {
	case input := <-svc.dispatched:
		if input.Order.ID != order.ID || input.Type != enums.NotificationTypeOrderApproved {
			t.Fatalf("unexpected dispatch input: %+v", input)
		}
	case <-time.After(time.Second):
		t.Fatal("dispatch never happened")
	}
}

func TestNotifierOutlivesCancelledCaller(t *testing.T) {
	svc := &stubService{dispatched: make(chan DispatchInput, 1)}
	notifier := NewNotifier(svc, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	notifier.Notify(ctx, DispatchInput{Order: &models.Order{ID: uuid.New()}, Type: enums.NotificationTypeOrderCompleted})

	select {
	case <-svc.dispatched:
	case <-time.After(time.Second):
		t.Fatal("dispatch must not die with the request context")
	}
}

func TestNotifierSwallowsDispatchFailure(t *testing.T) {
	svc := &stubService{dispatched: make(chan DispatchInput, 1), err: errors.New("db down")}
	notifier := NewNotifier(svc, quietLogger())

	// Must not panic or propagate anything to the caller.
	notifier.Notify(context.Background(), DispatchInput{Order: &models.Order{ID: uuid.New()}, Type: enums.NotificationTypeOrderRejected})

	select {
	case <-svc.dispatched:
	case <-time.After(time.Second):
		t.Fatal("dispatch never attempted")
	}
}

func TestNotifierNilServiceIsNoop(t *testing.T) {
	notifier := NewNotifier(nil, quietLogger())
	notifier.Notify(context.Background(), DispatchInput{Order: &models.Order{ID: uuid.New()}, Type: enums.NotificationTypeOrderApproved})
}

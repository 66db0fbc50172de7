package consumer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daristays/service-booking/internal/application"
	"github.com/daristays/service-booking/internal/domain"
	"github.com/daristays/service-booking/internal/events"
	"github.com/daristays/service-booking/internal/kafka"
)

func paymentStateEvent(t *testing.T, eventType string) kafka.CloudEvent {
	t.Helper()
	ce, err := kafka.NewCloudEvent("service-payment", eventType, events.PaymentStateEvent{
		BookingID: uuid.New(),
	})
	require.NoError(t, err)
	return ce
}

func TestHandlePaymentState(t *testing.T) {
	ctx := context.Background()
	c := &PaymentEventConsumer{logger: zap.NewNop()}

	t.Run("invalid state on redelivery is dropped", func(t *testing.T) {
		// A booking that was cancelled or disputed before the event arrived
		// can never apply it; returning the error would block the partition.
		ce := paymentStateEvent(t, events.PaymentAuthorized)
		err := c.handlePaymentState(ctx, ce, func(context.Context, uuid.UUID) (*application.BookingDTO, error) {
			return nil, domain.NewInvalidStateError("cancelled_by_guest", "payment_authorized")
		})
		assert.NoError(t, err)
	})

	t.Run("transient errors are retried", func(t *testing.T) {
		ce := paymentStateEvent(t, events.PaymentHeld)
		dbDown := errors.New("connection refused")
		err := c.handlePaymentState(ctx, ce, func(context.Context, uuid.UUID) (*application.BookingDTO, error) {
			return nil, dbDown
		})
		assert.ErrorIs(t, err, dbDown)
	})

	t.Run("malformed payload is dropped", func(t *testing.T) {
		ce := paymentStateEvent(t, events.PaymentAuthorized)
		ce.Data = []byte(`{"booking_id": 12}`)
		err := c.handlePaymentState(ctx, ce, func(context.Context, uuid.UUID) (*application.BookingDTO, error) {
			t.Fatal("apply must not run for malformed data")
			return nil, nil
		})
		assert.NoError(t, err)
	})
}

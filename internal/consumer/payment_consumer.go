package consumer

import (
	"context"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/daristays/service-booking/internal/application"
	"github.com/daristays/service-booking/internal/domain"
	"github.com/daristays/service-booking/internal/events"
	"github.com/daristays/service-booking/internal/kafka"
)

// PaymentEventConsumer listens to payment events and advances the booking
// state machine as money moves.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	service  *application.BookingService
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	service *application.BookingService,
	logger *zap.Logger,
) *PaymentEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.PaymentDepositCaptured:
		return c.handleDepositCaptured(ctx, cloudEvent)
	case events.PaymentAuthorized:
		return c.handlePaymentState(ctx, cloudEvent, c.service.AuthorizePayment)
	case events.PaymentHeld:
		return c.handlePaymentState(ctx, cloudEvent, c.service.HoldPayment)
	case events.PaymentPayoutCompleted:
		return c.handlePayoutCompleted(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handleDepositCaptured(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.DepositCapturedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse DepositCapturedEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing deposit captured event",
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("payment_id", evt.PaymentID.String()),
		zap.Int64("amount", evt.Amount),
	)

	if _, err := c.service.RecordDeposit(ctx, evt.BookingID); err != nil {
		// A booking that was cancelled or disputed in the meantime can never
		// accept this event; retrying would wedge the partition.
		if domain.IsCode(err, domain.CodeInvalidState) {
			c.logger.Warn("dropping deposit captured event for booking that moved on",
				zap.String("booking_id", evt.BookingID.String()),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to record deposit",
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (c *PaymentEventConsumer) handlePaymentState(
	ctx context.Context,
	cloudEvent kafka.CloudEvent,
	apply func(context.Context, uuid.UUID) (*application.BookingDTO, error),
) error {
	var evt events.PaymentStateEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PaymentStateEvent data", zap.Error(err))
		return nil
	}

	if _, err := apply(ctx, evt.BookingID); err != nil {
		if domain.IsCode(err, domain.CodeInvalidState) {
			c.logger.Warn("dropping payment event for booking that moved on",
				zap.String("booking_id", evt.BookingID.String()),
				zap.String("type", cloudEvent.Type),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to apply payment transition",
			zap.String("booking_id", evt.BookingID.String()),
			zap.String("type", cloudEvent.Type),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (c *PaymentEventConsumer) handlePayoutCompleted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.PayoutCompletedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PayoutCompletedEvent data", zap.Error(err))
		return nil
	}

	c.logger.Info("processing payout completed event",
		zap.String("booking_id", evt.BookingID.String()),
		zap.Int64("host_payout", evt.HostPayout),
	)

	if _, err := c.service.ConfirmSettlement(ctx, evt.BookingID); err != nil {
		if domain.IsCode(err, domain.CodeInvalidState) {
			c.logger.Warn("dropping payout completed event for booking that moved on",
				zap.String("booking_id", evt.BookingID.String()),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to settle booking after payout",
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("booking settled after payout",
		zap.String("booking_id", evt.BookingID.String()),
	)
	return nil
}

package consumer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/daristays/service-booking/internal/application"
	"github.com/daristays/service-booking/internal/events"
	"github.com/daristays/service-booking/internal/kafka"
)

// CatalogEventConsumer keeps the local property snapshot cache in sync with
// the catalog service.
type CatalogEventConsumer struct {
	consumer *kafka.Consumer
	service  *application.PropertyService
	logger   *zap.Logger
}

// NewCatalogEventConsumer creates a new CatalogEventConsumer.
func NewCatalogEventConsumer(
	brokers []string,
	groupID string,
	service *application.PropertyService,
	logger *zap.Logger,
) *CatalogEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicCatalogEvents, logger)
	return &CatalogEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming catalog events. This blocks until the context is cancelled.
func (c *CatalogEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *CatalogEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *CatalogEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from catalog topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	if cloudEvent.Type != events.CatalogPropertyUpserted {
		c.logger.Debug("ignoring unhandled catalog event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}

	var evt events.PropertyUpsertedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PropertyUpsertedEvent data", zap.Error(err))
		return nil
	}

	if err := c.service.ApplyCatalogUpsert(ctx, evt); err != nil {
		c.logger.Error("failed to apply catalog upsert",
			zap.String("property_id", evt.PropertyID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

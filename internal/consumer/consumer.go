// Package consumer subscribes to the platform event bus and feeds validated
// events into the posting automation. Delivery is at-least-once: handlers are
// idempotent downstream, malformed messages are dropped after logging, and
// transient failures are redelivered.
package consumer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/retailos/accounting_service/internal/apperrors"
	portssvc "github.com/retailos/accounting_service/internal/core/ports/services"
	"github.com/retailos/accounting_service/internal/middleware"
)

const (
	exchangeName = "events"
	queueName    = "accounting.postings"

	redialDelay = 5 * time.Second
)

// routingKeys are the event kinds this service subscribes to.
var routingKeys = []string{
	"pos.sale.closed",
	"pos.sale.returned",
	"hrms.payroll.finalized",
	"purchase.order.received",
	"purchase.payment.recorded",
	"asset.depreciation",
}

// Consumer owns the AMQP connection lifecycle and dispatches deliveries to
// the posting service.
type Consumer struct {
	url     string
	posting portssvc.PostingSvcFacade
	logger  *slog.Logger
}

func New(url string, posting portssvc.PostingSvcFacade, logger *slog.Logger) *Consumer {
	return &Consumer{url: url, posting: posting, logger: logger}
}

// Run connects and consumes until the context is cancelled, redialing with a
// fixed delay whenever the connection drops.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		err := c.consumeOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Error("Bus connection lost, redialing", slog.String("error", err.Error()), slog.Duration("delay", redialDelay))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(redialDelay):
		}
	}
}

// consumeOnce runs one connection's lifetime: dial, declare the topology,
// then process deliveries until the channel closes or the context ends.
func (c *Consumer) consumeOnce(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	queue, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return err
	}
	for _, key := range routingKeys {
		if err := ch.QueueBind(queue.Name, key, exchangeName, false, nil); err != nil {
			return err
		}
	}

	// One unacked delivery at a time keeps posting strictly sequential per
	// consumer, which the idempotency probe relies on.
	if err := ch.Qos(1, 0, false); err != nil {
		return err
	}

	deliveries, err := ch.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}
	c.logger.Info("Consuming events", slog.String("queue", queue.Name), slog.Int("bindings", len(routingKeys)))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

// handleDelivery parses and posts one message. Permanent failures (malformed
// body, validation rejects) are acked and dropped since redelivery cannot fix
// them; everything else is nacked for redelivery.
func (c *Consumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	logger := c.logger.With(
		slog.String("routing_key", delivery.RoutingKey),
		slog.String("message_id", delivery.MessageId),
	)
	ctx = middleware.WithLogger(ctx, logger)

	event, err := parseEvent(delivery.RoutingKey, delivery.Body)
	if err != nil {
		logger.Warn("Dropping undecodable event", slog.String("error", err.Error()))
		if err := delivery.Ack(false); err != nil {
			logger.Error("Failed to ack delivery", slog.String("error", err.Error()))
		}
		return
	}

	err = c.dispatch(ctx, event)
	if err != nil && !errors.Is(err, apperrors.ErrValidation) {
		logger.Error("Event handling failed, requeueing", slog.String("error", err.Error()))
		if err := delivery.Nack(false, true); err != nil {
			logger.Error("Failed to nack delivery", slog.String("error", err.Error()))
		}
		return
	}
	if err != nil {
		logger.Warn("Dropping invalid event", slog.String("error", err.Error()))
	}
	if err := delivery.Ack(false); err != nil {
		logger.Error("Failed to ack delivery", slog.String("error", err.Error()))
	}
}

func (c *Consumer) dispatch(ctx context.Context, event *parsedEvent) error {
	switch {
	case event.SaleClosed != nil:
		return c.posting.HandleSaleClosed(ctx, *event.SaleClosed)
	case event.SaleReturned != nil:
		return c.posting.HandleSaleReturned(ctx, *event.SaleReturned)
	case event.PayrollFinalized != nil:
		return c.posting.HandlePayrollFinalized(ctx, *event.PayrollFinalized)
	case event.PurchaseReceived != nil:
		return c.posting.HandlePurchaseReceived(ctx, *event.PurchaseReceived)
	case event.PurchasePaid != nil:
		return c.posting.HandlePurchasePaid(ctx, *event.PurchasePaid)
	case event.AssetDepreciation != nil:
		return c.posting.HandleAssetDepreciation(ctx, *event.AssetDepreciation)
	}
	return errors.New("parsed event carries no payload")
}

package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/model"
)

// Dispatcher sweeps the outbox and delivers queued notification emails in
// the background, decoupled from the requests that queued them. An event
// that fails to send stays pending and is retried on the next sweep.
type Dispatcher struct {
	outbox    model.OutboxStore
	mailer    model.Mailer
	baseURL   string
	interval  time.Duration
	batchSize int
	logger    *logger.Logger
}

func NewDispatcher(
	outbox model.OutboxStore,
	mailer model.Mailer,
	baseURL string,
	interval time.Duration,
	batchSize int,
	logger *logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		outbox:    outbox,
		mailer:    mailer,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run sweeps until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Sweep(ctx)
		}
	}
}

// Sweep delivers one batch of pending events.
func (d *Dispatcher) Sweep(ctx context.Context) {
	events, err := d.outbox.FetchPending(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("Mail dispatcher: failed to fetch pending events", "error", err.Error())
		return
	}

	for _, event := range events {
		if err := d.deliver(ctx, event); err != nil {
			d.logger.Error("Mail dispatcher: delivery failed, will retry",
				"event_id", event.EventID,
				"topic", event.Topic,
				"error", err.Error())
			continue
		}

		if err := d.outbox.MarkSent(ctx, event.ID); err != nil {
			d.logger.Error("Mail dispatcher: failed to mark event sent",
				"event_id", event.EventID,
				"error", err.Error())
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event model.OutboxEvent) error {
	switch event.Topic {
	case model.TopicUserRegistered:
		var payload model.VerificationPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode verification payload: %w", err)
		}
		return d.mailer.Send(ctx, payload.Email,
			"Please verify your account",
			verificationBody(payload, d.baseURL))

	case model.TopicOrderClosed:
		var payload model.OrderClosedPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode order payload: %w", err)
		}
		return d.mailer.Send(ctx, payload.Email,
			"Your order is confirmed",
			orderBody(payload))

	default:
		return fmt.Errorf("unknown outbox topic %q", event.Topic)
	}
}

func verificationBody(p model.VerificationPayload, baseURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", p.Name)
	fmt.Fprintf(&b, "Please verify your account by visiting:\n%s/activate/%s\n", baseURL, p.UserID)
	return b.String()
}

func orderBody(p model.OrderClosedPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nThank you for your order %s.\n\n", p.Name, p.OrderID)
	for _, line := range p.Lines {
		fmt.Fprintf(&b, "  %s x%d: %s\n", line.Title, line.Quantity, FormatCents(line.PriceCents*int64(line.Quantity)))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", FormatCents(p.SubtotalCents))
	fmt.Fprintf(&b, "Shipping: %s\n", FormatCents(p.ShippingCents))
	fmt.Fprintf(&b, "Total:    %s\n", FormatCents(p.TotalCents))
	return b.String()
}

// FormatCents renders an amount of minor units as a decimal string.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

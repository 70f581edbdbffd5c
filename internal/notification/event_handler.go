package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/events"
)

type Sender interface {
	Send(ctx context.Context, userID, notificationType, message string, data map[string]interface{}) (*Notification, error)
}

// EventHandler turns committed ledger events into payer notifications.
type EventHandler struct {
	sender Sender
	logger *slog.Logger
}

func NewEventHandler(sender Sender, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		sender: sender,
		logger: logger,
	}
}

func (h *EventHandler) HandlePaymentCreated(ctx context.Context, event events.Event) error {
	paymentEvent, ok := event.(*events.PaymentEvent)
	if !ok {
		h.logger.Error("invalid event type for payment created handler", "event_type", event.EventType())
		return fmt.Errorf("expected PaymentEvent, got %T", event)
	}

	message := fmt.Sprintf("Your payment of %s %s has been received and is awaiting verification.",
		paymentEvent.Amount, paymentEvent.Currency)
	return h.notify(ctx, paymentEvent, TypePayment, message)
}

func (h *EventHandler) HandlePaymentVerified(ctx context.Context, event events.Event) error {
	paymentEvent, ok := event.(*events.PaymentEvent)
	if !ok {
		h.logger.Error("invalid event type for payment verified handler", "event_type", event.EventType())
		return fmt.Errorf("expected PaymentEvent, got %T", event)
	}

	message := fmt.Sprintf("Your payment of %s %s has been verified.", paymentEvent.Amount, paymentEvent.Currency)
	return h.notify(ctx, paymentEvent, TypePaymentVerified, message)
}

func (h *EventHandler) notify(ctx context.Context, e *events.PaymentEvent, notificationType, message string) error {
	n, err := h.sender.Send(ctx, e.PayerID, notificationType, message, map[string]interface{}{
		"payment_id": e.PaymentID,
		"amount":     e.Amount,
		"currency":   e.Currency,
		"status":     e.Status,
	})
	if err != nil {
		h.logger.Error("failed to send payment notification",
			"error", err,
			"payment_id", e.PaymentID,
			"payer_id", e.PayerID,
			"event_id", e.EventID())
		return fmt.Errorf("notify payer %s about payment %s: %w", e.PayerID, e.PaymentID, err)
	}

	h.logger.Info("payment notification sent",
		"notification_id", n.ID,
		"payment_id", e.PaymentID,
		"payer_id", e.PayerID,
		"event_id", e.EventID())
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypePaymentCreated, h.HandlePaymentCreated)
	eventBus.Subscribe(events.EventTypePaymentVerified, h.HandlePaymentVerified)

	h.logger.Info("notification event handlers registered",
		"handlers", []string{events.EventTypePaymentCreated, events.EventTypePaymentVerified})
}

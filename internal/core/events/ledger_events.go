package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePaymentCreated  = "payment.created"
	EventTypePaymentVerified = "payment.verified"
)

// PaymentEvent is emitted by the ledger after the atomic unit that changed the
// payment has committed.
type PaymentEvent struct {
	BaseEvent
	PaymentID string `json:"payment_id"`
	PayerID   string `json:"payer_id"`
	PayerType string `json:"payer_type"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
}

func newPaymentEvent(eventType, paymentID, payerType, payerID, amount, currency, status string, at time.Time) *PaymentEvent {
	return &PaymentEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: at,
			Data: map[string]interface{}{
				"payment_id": paymentID,
				"payer_id":   payerID,
				"payer_type": payerType,
				"amount":     amount,
				"currency":   currency,
				"status":     status,
			},
		},
		PaymentID: paymentID,
		PayerID:   payerID,
		PayerType: payerType,
		Amount:    amount,
		Currency:  currency,
		Status:    status,
	}
}

func NewPaymentCreatedEvent(paymentID, payerType, payerID, amount, currency, status string, at time.Time) *PaymentEvent {
	return newPaymentEvent(EventTypePaymentCreated, paymentID, payerType, payerID, amount, currency, status, at)
}

func NewPaymentVerifiedEvent(paymentID, payerType, payerID, amount, currency, status string, at time.Time) *PaymentEvent {
	return newPaymentEvent(EventTypePaymentVerified, paymentID, payerType, payerID, amount, currency, status, at)
}

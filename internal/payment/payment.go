package payment

import (
	"fmt"
	"time"

	paymentDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/payment"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	// Reserved for transitions this ledger does not perform yet.
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

type Payment struct {
	ID            string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	TransactionID string
	Status        Status
	Payer         Payer
	Purpose       string
	Version       int64
	VerifiedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewPayment(id string, dto CreatePaymentDTO, payer Payer, currency string, now time.Time) *Payment {
	return &Payment{
		ID:            id,
		Amount:        dto.Amount,
		Currency:      currency,
		PaymentMethod: dto.PaymentMethod,
		TransactionID: dto.TransactionID,
		Status:        StatusPending,
		Payer:         payer,
		Purpose:       dto.Purpose,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (p *Payment) IsCompleted() bool {
	return p.Status == StatusCompleted
}

func (p *Payment) CanBeVerified() bool {
	return p.Status == StatusPending
}

// MarkVerified applies the completed state locally, mirroring the row update.
func (p *Payment) MarkVerified(now time.Time) {
	p.Status = StatusCompleted
	p.VerifiedAt = &now
	p.UpdatedAt = now
	p.Version++
}

func (p *Payment) createdDescription() string {
	return fmt.Sprintf("Payment of %s %s initiated", p.Amount.String(), p.Currency)
}

func (p *Payment) verifiedDescription() string {
	return fmt.Sprintf("Payment of %s %s verified", p.Amount.String(), p.Currency)
}

func ToDataModel(p *Payment) *paymentDatamodel.Payment {
	return &paymentDatamodel.Payment{
		ID:            p.ID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		PayerType:     string(p.Payer.Kind()),
		PayerID:       p.Payer.Ref(),
		Purpose:       p.Purpose,
		Version:       p.Version,
		VerifiedAt:    p.VerifiedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func FromDataModel(m *paymentDatamodel.Payment) (*Payment, error) {
	payer, err := NewPayer(m.PayerType, m.PayerID)
	if err != nil {
		return nil, fmt.Errorf("payment %s has unreadable payer %q/%q: %v", m.ID, m.PayerType, m.PayerID, err)
	}
	return &Payment{
		ID:            m.ID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		PaymentMethod: m.PaymentMethod,
		TransactionID: m.TransactionID,
		Status:        Status(m.Status),
		Payer:         payer,
		Purpose:       m.Purpose,
		Version:       m.Version,
		VerifiedAt:    m.VerifiedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

func FromDataModelSlice(rows []*paymentDatamodel.Payment) ([]*Payment, error) {
	result := make([]*Payment, len(rows))
	for i, row := range rows {
		p, err := FromDataModel(row)
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

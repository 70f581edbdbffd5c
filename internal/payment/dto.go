package payment

import (
	"time"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

// CreatePaymentDTO carries a payment intent. TransactionID is the external
// reference; duplicates are accepted and not deduplicated.
type CreatePaymentDTO struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	PayerID       string          `json:"payer_id"`
	PayerType     string          `json:"payer_type"`
	Purpose       string          `json:"purpose"`
}

func (dto CreatePaymentDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("amount", dto.Amount).
		Positive(errors.ErrCodeInvalidAmount).
		MaxDecimalPlaces(2, errors.ErrCodeInvalidAmount)
	validator.Field("payment_method", dto.PaymentMethod).Required().MaxLength(50)
	validator.Field("transaction_id", dto.TransactionID).Required().MaxLength(100)
	validator.Field("payer_id", dto.PayerID).Required().MaxLength(64)
	validator.Field("payer_type", dto.PayerType).Required().OneOf(errors.ErrCodeInvalidPayerType, payerKinds...)
	validator.Field("purpose", dto.Purpose).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type PayerResponse struct {
	Type PayerKind `json:"type"`
	ID   string    `json:"id"`
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	Status        Status          `json:"status"`
	Payer         PayerResponse   `json:"payer"`
	Purpose       string          `json:"purpose"`
	VerifiedAt    *time.Time      `json:"verified_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type PaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

func (p *Payment) ToResponse() PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		Status:        p.Status,
		Payer:         PayerResponse{Type: p.Payer.Kind(), ID: p.Payer.Ref()},
		Purpose:       p.Purpose,
		VerifiedAt:    p.VerifiedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type Payment struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Currency      string          `gorm:"column:currency;type:varchar(3);not null"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(50);not null"`
	TransactionID string          `gorm:"column:transaction_id;type:varchar(100);not null;index"`
	Status        string          `gorm:"column:status;type:varchar(20);not null"`
	PayerType     string          `gorm:"column:payer_type;type:varchar(32);not null;index:idx_payments_payer,priority:1"`
	PayerID       string          `gorm:"column:payer_id;type:varchar(64);not null;index:idx_payments_payer,priority:2"`
	Purpose       string          `gorm:"column:purpose;not null"`
	Version       int64           `gorm:"column:version;not null"`
	VerifiedAt    *time.Time      `gorm:"column:verified_at"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;not null"`
}

func (Payment) TableName() string {
	return "payments"
}

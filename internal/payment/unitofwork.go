package payment

import (
	"context"
	"time"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/auditlog"
	paymentDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/payment"
)

// RepositoryAPI is the payment store. GetByID returns ErrPaymentNotFound for
// unknown ids.
type RepositoryAPI interface {
	Create(ctx context.Context, p *paymentDatamodel.Payment) error
	GetByID(ctx context.Context, id string) (*paymentDatamodel.Payment, error)
	ListByPayer(ctx context.Context, payerType, payerID string) ([]*paymentDatamodel.Payment, error)
	// MarkCompleted sets the completed status and bumps the version. With
	// onlyPending the update matches pending rows only. Returns rows affected.
	MarkCompleted(ctx context.Context, id string, verifiedAt time.Time, onlyPending bool) (int64, error)
}

// Tx exposes the stores bound to one open transaction.
type Tx interface {
	Payments() RepositoryAPI
	ActivityLogs() auditlog.WriterAPI
}

// UnitOfWork runs fn inside a single atomic unit. Everything written through
// tx commits when fn returns nil and rolls back when it returns an error or
// panics.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx Tx) error) error
}

package postgres

import (
	"context"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/auditlog"
	auditpg "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/auditlog/postgres"
	paymentpkg "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/payment"
	"gorm.io/gorm"
)

// UnitOfWork maps each unit onto one database transaction.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

type txScope struct {
	payments     *PaymentRepository
	activityLogs *auditpg.Writer
}

func (t *txScope) Payments() paymentpkg.RepositoryAPI { return t.payments }
func (t *txScope) ActivityLogs() auditlog.WriterAPI   { return t.activityLogs }

// Do commits when fn returns nil. An error or panic from fn, or a failed
// commit, rolls the transaction back.
func (u *UnitOfWork) Do(ctx context.Context, fn func(tx paymentpkg.Tx) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txScope{
			payments:     NewPaymentRepository(tx),
			activityLogs: auditpg.NewWriter(tx),
		})
	})
}

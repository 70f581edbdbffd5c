package postgres

import (
	"context"
	stderrors "errors"
	"time"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	paymentDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/payment"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{
		db: db,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDatamodel.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*paymentDatamodel.Payment, error) {
	var p paymentDatamodel.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByPayer(ctx context.Context, payerType, payerID string) ([]*paymentDatamodel.Payment, error) {
	payments := make([]*paymentDatamodel.Payment, 0)
	err := r.db.WithContext(ctx).
		Where("payer_type = ? AND payer_id = ?", payerType, payerID).
		Order("created_at DESC, id DESC").
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) MarkCompleted(ctx context.Context, id string, verifiedAt time.Time, onlyPending bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&paymentDatamodel.Payment{}).Where("id = ?", id)
	if onlyPending {
		q = q.Where("status = ?", paymentDatamodel.StatusPending)
	}

	res := q.Updates(map[string]interface{}{
		"status":      paymentDatamodel.StatusCompleted,
		"verified_at": verifiedAt,
		"updated_at":  verifiedAt,
		"version":     gorm.Expr("version + ?", 1),
	})
	return res.RowsAffected, res.Error
}

package postgres

import (
	"context"
	stderrors "errors"
	"time"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	notificationDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/notification"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create runs in GORM's default write transaction.
func (r *NotificationRepository) Create(ctx context.Context, n *notificationDatamodel.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*notificationDatamodel.Notification, error) {
	var n notificationDatamodel.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id int64, readAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&notificationDatamodel.Notification{}).
		Where("id = ?", id).
		Update("read_at", readAt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationDatamodel.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

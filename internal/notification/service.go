package notification

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/common/validation"
	notificationDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/notification"
)

type RepositoryAPI interface {
	Create(ctx context.Context, n *notificationDatamodel.Notification) error
	GetByID(ctx context.Context, id int64) (*notificationDatamodel.Notification, error)
	MarkAsRead(ctx context.Context, id int64, readAt time.Time) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Send stores an unread notification for userID.
func (s *Service) Send(ctx context.Context, userID, notificationType, message string, data map[string]interface{}) (*Notification, error) {
	validator := validation.NewValidator()
	validator.Field("user_id", userID).Required()
	validator.Field("type", notificationType).Required()
	validator.Field("message", message).Required()
	if appErr := validator.Validate(); appErr != nil {
		return nil, appErr
	}

	n := &Notification{
		UserID:    userID,
		Type:      notificationType,
		Message:   message,
		Data:      data,
		CreatedAt: s.now().UTC(),
	}
	row, err := ToDataModel(n)
	if err != nil {
		return nil, errors.NewValidationError("notification data is not serialisable", errors.ErrCodeValidationFailed).WithCause(err)
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to store notification", "error", err, "user_id", userID, "type", notificationType)
		return nil, errors.NewStorageError("failed to store notification", err)
	}
	n.ID = row.ID

	s.logger.Debug("notification sent", "notification_id", n.ID, "user_id", userID, "type", notificationType)
	return n, nil
}

// MarkAsRead stamps ReadAt. Marking an already read notification moves the
// timestamp forward.
func (s *Service) MarkAsRead(ctx context.Context, id int64) (*Notification, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load notification", "error", err, "notification_id", id)
		return nil, errors.NewStorageError("failed to load notification", err)
	}

	readAt := s.now().UTC()
	if err := s.repo.MarkAsRead(ctx, id, readAt); err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		s.logger.Error("failed to mark notification read", "error", err, "notification_id", id)
		return nil, errors.NewStorageError("failed to mark notification read", err)
	}
	row.ReadAt = &readAt

	n, err := FromDataModel(row)
	if err != nil {
		return nil, errors.NewStorageError("stored notification is unreadable", err)
	}
	return n, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count unread notifications", "error", err, "user_id", userID)
		return 0, errors.NewStorageError("failed to count unread notifications", err)
	}
	return count, nil
}

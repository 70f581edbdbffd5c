package auditlog

import (
	"time"

	activityDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/activitylog"
)

type ActivityType string

const (
	ActivityPayment         ActivityType = "payment"
	ActivityPaymentVerified ActivityType = "payment_verified"
)

type Entry struct {
	ID           int64        `json:"id"`
	UserID       string       `json:"user_id"`
	ActivityType ActivityType `json:"activity_type"`
	Description  string       `json:"description"`
	CreatedAt    time.Time    `json:"created_at"`
}

func NewEntry(userID string, activityType ActivityType, description string, createdAt time.Time) *Entry {
	return &Entry{
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		CreatedAt:    createdAt,
	}
}

func ToDataModel(e *Entry) *activityDatamodel.ActivityLog {
	return &activityDatamodel.ActivityLog{
		ID:           e.ID,
		UserID:       e.UserID,
		ActivityType: string(e.ActivityType),
		Description:  e.Description,
		CreatedAt:    e.CreatedAt,
	}
}

func FromDataModel(m *activityDatamodel.ActivityLog) *Entry {
	return &Entry{
		ID:           m.ID,
		UserID:       m.UserID,
		ActivityType: ActivityType(m.ActivityType),
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
	}
}

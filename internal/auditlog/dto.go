package auditlog

import (
	"time"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/common/validation"
)

// AppendEntryRequest is the payload other collaborators post to record
// non-payment activity.
type AppendEntryRequest struct {
	UserID       string     `json:"user_id"`
	ActivityType string     `json:"activity_type"`
	Description  string     `json:"description"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

func (r *AppendEntryRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("user_id", r.UserID).Required()
	validator.Field("activity_type", r.ActivityType).Required()
	validator.Field("description", r.Description).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func (r *AppendEntryRequest) ToEntry() *Entry {
	e := &Entry{
		UserID:       r.UserID,
		ActivityType: ActivityType(r.ActivityType),
		Description:  r.Description,
	}
	if r.CreatedAt != nil {
		e.CreatedAt = *r.CreatedAt
	}
	return e
}

type EntriesResponse struct {
	UserID  string   `json:"user_id"`
	Entries []*Entry `json:"entries"`
}

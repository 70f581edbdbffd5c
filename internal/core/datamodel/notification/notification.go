package notification

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	ID        int64          `gorm:"primaryKey"`
	UserID    string         `gorm:"column:user_id;type:varchar(64);not null;index"`
	Type      string         `gorm:"column:type;type:varchar(50);not null"`
	Message   string         `gorm:"column:message;not null"`
	Data      datatypes.JSON `gorm:"column:data"`
	ReadAt    *time.Time     `gorm:"column:read_at"`
	CreatedAt time.Time      `gorm:"column:created_at;not null"`
}

func (Notification) TableName() string {
	return "notifications"
}

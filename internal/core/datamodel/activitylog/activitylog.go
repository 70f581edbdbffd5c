package activitylog

import "time"

// ActivityLog is an append-only audit row. The db tags serve the sqlx read
// path, the gorm tags the transactional write path.
type ActivityLog struct {
	ID           int64     `gorm:"primaryKey" db:"id"`
	UserID       string    `gorm:"column:user_id;type:varchar(64);not null;index:idx_activity_logs_user_created,priority:1" db:"user_id"`
	ActivityType string    `gorm:"column:activity_type;type:varchar(50);not null" db:"activity_type"`
	Description  string    `gorm:"column:description;not null" db:"description"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index:idx_activity_logs_user_created,priority:2" db:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

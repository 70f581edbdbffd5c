package notification

import (
	"encoding/json"
	"fmt"
	"time"

	notificationDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/notification"
	"gorm.io/datatypes"
)

const (
	TypePayment         = "payment"
	TypePaymentVerified = "payment_verified"
)

type Notification struct {
	ID        int64                  `json:"id"`
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

func ToDataModel(n *Notification) (*notificationDatamodel.Notification, error) {
	data := n.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode notification data: %w", err)
	}
	return &notificationDatamodel.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Message:   n.Message,
		Data:      datatypes.JSON(raw),
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}, nil
}

func FromDataModel(m *notificationDatamodel.Notification) (*Notification, error) {
	data := map[string]interface{}{}
	if len(m.Data) > 0 {
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return nil, fmt.Errorf("decode notification %d data: %w", m.ID, err)
		}
	}
	return &Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      m.Type,
		Message:   m.Message,
		Data:      data,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

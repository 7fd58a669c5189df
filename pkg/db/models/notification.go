package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
)

// Notification records an order event message delivered to a user.
type Notification struct {
	ID        uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	OrderID   uuid.UUID                `gorm:"column:order_id;type:uuid;not null"`
	Type      enums.NotificationType   `gorm:"column:type;type:text;not null"`
	Message   string                   `gorm:"column:message;not null"`
	Status    enums.NotificationStatus `gorm:"column:status;type:text;not null;default:'sent'"`
	ReadAt    *time.Time               `gorm:"column:read_at"`
	CreatedAt time.Time                `gorm:"column:created_at;autoCreateTime"`
}

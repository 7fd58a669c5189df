package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
)

// Vendor represents an approved (or pending) seller profile owned by a user.
type Vendor struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID          `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	BusinessName  string             `gorm:"column:business_name;not null"`
	Description   *string            `gorm:"column:description"`
	ContactNumber string             `gorm:"column:contact_number;not null"`
	Location      *string            `gorm:"column:location"`
	Status        enums.VendorStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	User          *User              `gorm:"foreignKey:UserID"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

package vendors

import (
	"time"

	"github.com/google/uuid"

	"github.com/blissmahlathi/campusmarket-backend/internal/users"
	"github.com/blissmahlathi/campusmarket-backend/pkg/db/models"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
)

// ApplyRequest is the payload submitted by a buyer applying to sell.
type ApplyRequest struct {
	BusinessName  string  `json:"business_name" validate:"required"`
	Description   *string `json:"description,omitempty"`
	ContactNumber string  `json:"contact_number" validate:"required"`
	Location      *string `json:"location,omitempty"`
}

// VendorDTO is the transport shape for a vendor profile.
type VendorDTO struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"user_id"`
	BusinessName  string             `json:"business_name"`
	Description   *string            `json:"description,omitempty"`
	ContactNumber string             `json:"contact_number"`
	Location      *string            `json:"location,omitempty"`
	Status        enums.VendorStatus `json:"status"`
	User          *users.UserDTO     `json:"user,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// VendorList wraps paginated vendors plus the next cursor.
type VendorList struct {
	Vendors    []VendorDTO `json:"vendors"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

func FromModel(v *models.Vendor) *VendorDTO {
	if v == nil {
		return nil
	}
	return &VendorDTO{
		ID:            v.ID,
		UserID:        v.UserID,
		BusinessName:  v.BusinessName,
		Description:   v.Description,
		ContactNumber: v.ContactNumber,
		Location:      v.Location,
		Status:        v.Status,
		User:          users.FromModel(v.User),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blissmahlathi/campusmarket-backend/pkg/db/models"
)

// CreateProductRequest is the payload vendors submit when listing an item.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

// UpdateProductRequest carries the mutable product fields.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	IsAvailable *bool            `json:"is_available,omitempty"`
}

// ListFilters describe the inputs supported by the product list.
type ListFilters struct {
	VendorID      *uuid.UUID
	CategoryID    *uuid.UUID
	Query         string
	AvailableOnly bool
	MaxPrice      *decimal.Decimal
}

// ProductDTO is the transport shape for a listing.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	VendorID    uuid.UUID       `json:"vendor_id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Stock       int             `json:"stock"`
	IsAvailable bool            `json:"is_available"`
	VendorName  string          `json:"vendor_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductList wraps a cursor page of products.
type ProductList struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// CategoryDTO is the transport shape for a category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:          p.ID,
		VendorID:    p.VendorID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Vendor != nil {
		dto.VendorName = p.Vendor.BusinessName
	}
	return dto
}

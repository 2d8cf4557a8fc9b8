package product

import (
	"github.com/google/uuid"
)

// Requests

type CreateProductRequest struct {
	Name        string     `json:"name" validate:"required,max=120"`
	Description string     `json:"description"`
	Price       float64    `json:"price" validate:"required,gt=0"`
	Stock       int        `json:"stock" validate:"min=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// UpdateProductRequest carries one named optional field per mutable column;
// only non-nil fields are written.
type UpdateProductRequest struct {
	ProductID   uuid.UUID  `json:"-"`
	Name        *string    `json:"name" validate:"omitempty,max=120"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price" validate:"omitempty,gt=0"`
	Stock       *int       `json:"stock" validate:"omitempty,min=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

type CreateVariantRequest struct {
	Name  string  `json:"name" validate:"required,max=120"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Stock int     `json:"stock" validate:"min=0"`
}

type ListProductsQuery struct {
	Search     string        `json:"search"`
	CategoryID uuid.NullUUID `json:"categoryID"`
	SortBy     string        `json:"sortBy" validate:"oneof=name price"`
}

// Responses

type ProductWithVariantsDTO struct {
	Product
	Variants []*Variant `json:"variants"`
}

package product

import (
	"github.com/google/uuid"
)

type Product struct {
	ProductID   uuid.UUID     `json:"product_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	CategoryID  uuid.NullUUID `json:"category_id"`
}

type Variant struct {
	VariantID uuid.UUID `json:"variant_id"`
	ProductID uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
}

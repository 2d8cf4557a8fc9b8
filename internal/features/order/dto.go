package order

import "github.com/google/uuid"

// Requests

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	UserID    uuid.UUID          `json:"user_id" validate:"required"`
	Items     []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PromoCode string             `json:"promo_code"`
}

type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=placed shipped delivered cancelled"`
}

type AssignSlotRequest struct {
	SlotID uuid.UUID `json:"slot_id" validate:"required"`
}

type CreatePromoCodeRequest struct {
	Code            string `json:"code" validate:"required,max=60"`
	DiscountPercent int    `json:"discount_percent" validate:"min=0,max=100"`
	Active          bool   `json:"active"`
}

type CreateSlotRequest struct {
	SlotTime string `json:"slot_time" validate:"required"`
}

// Responses

type TrackingDTO struct {
	Status         OrderStatus `json:"status"`
	TrackingNumber string      `json:"tracking_number,omitempty"`
}

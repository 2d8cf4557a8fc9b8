package order

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// legalTransitions is the forward-only status lattice. Cancel is a side
// branch out of placed; return is a side branch out of delivered.
var legalTransitions = map[OrderStatus][]OrderStatus{
	StatusPlaced:    {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {StatusCancelled},
}

func isLegalTransition(from, to OrderStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

type Order struct {
	OrderID        uuid.UUID     `json:"order_id"`
	UserID         uuid.UUID     `json:"user_id"`
	Status         OrderStatus   `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	Total          float64       `json:"total"`
	DeliverySlotID uuid.NullUUID `json:"delivery_slot_id"`
	TrackingNumber string        `json:"tracking_number,omitempty"`
	Items          []*OrderItem  `json:"items"`
}

// OrderItem carries the price at purchase time; later product price changes
// never touch it.
type OrderItem struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	OrderID     uuid.UUID `json:"-"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
}

type PromoCode struct {
	PromoCodeID     uuid.UUID `json:"promo_code_id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	Active          bool      `json:"active"`
}

type DeliverySlot struct {
	SlotID    uuid.UUID     `json:"slot_id"`
	SlotTime  string        `json:"slot_time"`
	Available bool          `json:"available"`
	OrderID   uuid.NullUUID `json:"order_id"`
}

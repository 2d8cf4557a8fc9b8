package event

import "github.com/google/uuid"

const (
	OrderPlacedEventName    EventName = "order.placed"
	OrderCancelledEventName EventName = "order.cancelled"
)

type OrderPlacedItem struct {
	ProductID uuid.UUID
	Quantity  int
}

type OrderPlacedEvent struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Items   []OrderPlacedItem
}

func (e *OrderPlacedEvent) GetEventName() EventName {
	return OrderPlacedEventName
}

type OrderCancelledEvent struct {
	OrderID   uuid.UUID
	Restocked bool
}

func (e *OrderCancelledEvent) GetEventName() EventName {
	return OrderCancelledEventName
}

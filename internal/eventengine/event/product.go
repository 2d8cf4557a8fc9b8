package event

import "github.com/google/uuid"

const (
	ProductDeletedEventName EventName = "product.deleted"
)

type ProductDeletedEvent struct {
	ProductID uuid.UUID
}

func (e *ProductDeletedEvent) GetEventName() EventName {
	return ProductDeletedEventName
}

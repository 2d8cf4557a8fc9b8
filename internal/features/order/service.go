package order

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/sampledev-eng/freshcart-express-backend/internal/eventengine"
	"github.com/sampledev-eng/freshcart-express-backend/internal/eventengine/event"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
	"github.com/shopspring/decimal"
)

type storer interface {
	createOne(ctx context.Context, req *CreateOrderRequest, discountPercent int) (*Order, error)
	findByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	updateStatus(ctx context.Context, orderID uuid.UUID, from, to OrderStatus) (bool, error)
	cancelAndRestock(ctx context.Context, orderID uuid.UUID) (bool, error)
	assignSlot(ctx context.Context, orderID, slotID uuid.UUID) error
	createPromoCode(ctx context.Context, req *CreatePromoCodeRequest) (*PromoCode, error)
	findPromoCodeByCode(ctx context.Context, code string) (*PromoCode, error)
	findAllPromoCodes(ctx context.Context) ([]*PromoCode, error)
	createSlot(ctx context.Context, req *CreateSlotRequest) (*DeliverySlot, error)
	findAvailableSlots(ctx context.Context) ([]*DeliverySlot, error)
}

type service struct {
	store  storer
	events eventengine.RegisterPublisher
}

func NewService(store storer, events eventengine.RegisterPublisher) *service {
	events.RegisterEvents(
		event.OrderPlacedEventName,
		event.OrderCancelledEventName,
	)

	return &service{
		store:  store,
		events: events,
	}
}

// computeTotal prices the order from its snapshot line items. Subtotal and
// discount are taken in decimal so float drift never shows up on a receipt,
// rounded to cents at the end.
func computeTotal(items []*OrderItem, discountPercent int) float64 {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).
			Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	factor := decimal.NewFromInt(int64(100 - discountPercent)).
		Div(decimal.NewFromInt(100))

	return subtotal.Mul(factor).Round(2).InexactFloat64()
}

func (s *service) placeOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	discountPercent := 0
	if req.PromoCode != "" {
		promo, err := s.store.findPromoCodeByCode(ctx, req.PromoCode)
		if err != nil {
			return nil, err
		}

		// Unknown or inactive codes price the order undiscounted
		// instead of failing it.
		if promo != nil && promo.Active {
			discountPercent = promo.DiscountPercent
		}
	}

	newOrder, err := s.store.createOne(ctx, req, discountPercent)
	if err != nil {
		return nil, err
	}

	placedEvent := &event.OrderPlacedEvent{
		OrderID: newOrder.OrderID,
		UserID:  newOrder.UserID,
	}
	for _, item := range newOrder.Items {
		placedEvent.Items = append(placedEvent.Items, event.OrderPlacedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := s.events.Publish(
		&event.Event{
			Name:    placedEvent.GetEventName(),
			Payload: placedEvent,
		},
	); err != nil {
		log.Println("failed to publish order placed event:", err)
	}

	return newOrder, nil
}

func (s *service) getOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	foundOrder, err := s.store.findByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if foundOrder == nil {
		return nil, servererrors.ErrOrderNotFound
	}

	return foundOrder, nil
}

func (s *service) updateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus OrderStatus) (*Order, error) {
	currentOrder, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isLegalTransition(currentOrder.Status, newStatus) {
		return nil, servererrors.ErrInvalidStatusTransition
	}

	if newStatus == StatusCancelled {
		// Cancellation has its own semantics depending on where the
		// order is: a placed order restocks, a delivered one is a
		// return and does not.
		if currentOrder.Status == StatusPlaced {
			if err := s.cancelOrder(ctx, orderID); err != nil {
				return nil, err
			}
		} else {
			if err := s.returnOrder(ctx, orderID); err != nil {
				return nil, err
			}
		}

		return s.getOrder(ctx, orderID)
	}

	moved, err := s.store.updateStatus(ctx, orderID, currentOrder.Status, newStatus)
	if err != nil {
		return nil, err
	}

	// The status changed under us between the read and the update.
	if !moved {
		return nil, servererrors.ErrInvalidStatusTransition
	}

	return s.getOrder(ctx, orderID)
}

// cancelOrder cancels a placed order and returns its items to stock.
func (s *service) cancelOrder(ctx context.Context, orderID uuid.UUID) error {
	currentOrder, err := s.getOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if currentOrder.Status != StatusPlaced {
		return servererrors.ErrInvalidStatusTransition
	}

	cancelled, err := s.store.cancelAndRestock(ctx, orderID)
	if err != nil {
		return err
	}

	if !cancelled {
		return servererrors.ErrInvalidStatusTransition
	}

	s.publishCancelled(orderID, true)

	return nil
}

// returnOrder cancels a delivered order. Returned goods go through a
// separate intake flow, so nothing is restocked here.
func (s *service) returnOrder(ctx context.Context, orderID uuid.UUID) error {
	currentOrder, err := s.getOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if currentOrder.Status != StatusDelivered {
		return servererrors.ErrInvalidStatusTransition
	}

	moved, err := s.store.updateStatus(ctx, orderID, StatusDelivered, StatusCancelled)
	if err != nil {
		return err
	}

	if !moved {
		return servererrors.ErrInvalidStatusTransition
	}

	s.publishCancelled(orderID, false)

	return nil
}

func (s *service) publishCancelled(orderID uuid.UUID, restocked bool) {
	cancelledEvent := &event.OrderCancelledEvent{
		OrderID:   orderID,
		Restocked: restocked,
	}

	if err := s.events.Publish(
		&event.Event{
			Name:    cancelledEvent.GetEventName(),
			Payload: cancelledEvent,
		},
	); err != nil {
		log.Println("failed to publish order cancelled event:", err)
	}
}

func (s *service) getTracking(ctx context.Context, orderID uuid.UUID) (*TrackingDTO, error) {
	foundOrder, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &TrackingDTO{
		Status:         foundOrder.Status,
		TrackingNumber: foundOrder.TrackingNumber,
	}, nil
}

func (s *service) assignDeliverySlot(ctx context.Context, orderID, slotID uuid.UUID) (*Order, error) {
	if err := s.store.assignSlot(ctx, orderID, slotID); err != nil {
		return nil, err
	}

	return s.getOrder(ctx, orderID)
}

func (s *service) createPromoCode(ctx context.Context, req *CreatePromoCodeRequest) (*PromoCode, error) {
	existing, err := s.store.findPromoCodeByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, servererrors.ErrPromoCodeAlreadyExists
	}

	return s.store.createPromoCode(ctx, req)
}

func (s *service) getAllPromoCodes(ctx context.Context) ([]*PromoCode, error) {
	return s.store.findAllPromoCodes(ctx)
}

func (s *service) createDeliverySlot(ctx context.Context, req *CreateSlotRequest) (*DeliverySlot, error) {
	return s.store.createSlot(ctx, req)
}

func (s *service) getAvailableSlots(ctx context.Context) ([]*DeliverySlot, error) {
	return s.store.findAvailableSlots(ctx)
}

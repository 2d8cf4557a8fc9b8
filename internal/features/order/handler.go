package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/sampledev-eng/freshcart-express-backend/internal/handlerutils"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
	"github.com/sampledev-eng/freshcart-express-backend/internal/validate"
)

type servicer interface {
	placeOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error)
	getOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)
	updateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus OrderStatus) (*Order, error)
	cancelOrder(ctx context.Context, orderID uuid.UUID) error
	returnOrder(ctx context.Context, orderID uuid.UUID) error
	getTracking(ctx context.Context, orderID uuid.UUID) (*TrackingDTO, error)
	assignDeliverySlot(ctx context.Context, orderID, slotID uuid.UUID) (*Order, error)
	createPromoCode(ctx context.Context, req *CreatePromoCodeRequest) (*PromoCode, error)
	getAllPromoCodes(ctx context.Context) ([]*PromoCode, error)
	createDeliverySlot(ctx context.Context, req *CreateSlotRequest) (*DeliverySlot, error)
	getAvailableSlots(ctx context.Context) ([]*DeliverySlot, error)
}

type handler struct {
	service servicer
}

func NewHandler(orderService servicer) *handler {
	return &handler{
		service: orderService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	// Literal segments before the wildcard ones so chi never swallows
	// "promocodes" or "slots" as an {orderID}.
	router.Post(
		"/orders/promocodes",
		handlerutils.MakeHandler(
			h.createPromoCodeHandler,
		),
	)

	router.Get(
		"/orders/promocodes",
		handlerutils.MakeHandler(
			h.getAllPromoCodesHandler,
		),
	)

	router.Post(
		"/orders/slots",
		handlerutils.MakeHandler(
			h.createSlotHandler,
		),
	)

	router.Get(
		"/orders/slots",
		handlerutils.MakeHandler(
			h.getAvailableSlotsHandler,
		),
	)

	router.Post(
		"/orders",
		handlerutils.MakeHandler(
			h.placeOrderHandler,
		),
	)

	router.Get(
		"/orders/{orderID}",
		handlerutils.MakeHandler(
			h.getOrderHandler,
		),
	)

	router.Put(
		"/orders/{orderID}/status",
		handlerutils.MakeHandler(
			h.updateStatusHandler,
		),
	)

	router.Post(
		"/orders/{orderID}/cancel",
		handlerutils.MakeHandler(
			h.cancelOrderHandler,
		),
	)

	router.Post(
		"/orders/{orderID}/return",
		handlerutils.MakeHandler(
			h.returnOrderHandler,
		),
	)

	router.Get(
		"/orders/{orderID}/tracking",
		handlerutils.MakeHandler(
			h.getTrackingHandler,
		),
	)

	router.Post(
		"/orders/{orderID}/slot",
		handlerutils.MakeHandler(
			h.assignSlotHandler,
		),
	)
}

func (h *handler) placeOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateOrderRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	newOrder, err := h.service.placeOrder(ctx, payload)
	if err != nil {
		return translateOrderErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order placed",
		newOrder,
	)
}

func (h *handler) getOrderHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := parseOrderID(r)
	if err != nil {
		return err
	}

	foundOrder, err := h.service.getOrder(r.Context(), orderID)
	if err != nil {
		return translateOrderErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order found",
		foundOrder,
	)
}

func (h *handler) updateStatusHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	orderID, err := parseOrderID(r)
	if err != nil {
		return err
	}

	var payload *UpdateStatusRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	updatedOrder, err := h.service.updateOrderStatus(ctx, orderID, payload.Status)
	if err != nil {
		return translateOrderErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order status updated",
		updatedOrder,
	)
}

func (h *handler) cancelOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	orderID, err := parseOrderID(r)
	if err != nil {
		return err
	}

	if err := h.service.cancelOrder(ctx, orderID); err != nil {
		return translateOrderErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order cancelled",
		nil,
	)
}

func (h *handler) returnOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	orderID, err := parseOrderID(r)
	if err != nil {
		return err
	}

	if err := h.service.returnOrder(ctx, orderID); err != nil {
		return translateOrderErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order returned",
		nil,
	)
}

func (h *handler) getTrackingHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := parseOrderID(r)
	if err != nil {
		return err
	}

	tracking, err := h.service.getTracking(r.Context(), orderID)
	if err != nil {
		return translateOrderErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order tracking retrieved",
		tracking,
	)
}

func (h *handler) assignSlotHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	orderID, err := parseOrderID(r)
	if err != nil {
		return err
	}

	var payload *AssignSlotRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	updatedOrder, err := h.service.assignDeliverySlot(ctx, orderID, payload.SlotID)
	if err != nil {
		return translateOrderErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"delivery slot assigned",
		updatedOrder,
	)
}

func (h *handler) createPromoCodeHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreatePromoCodeRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	newPromo, err := h.service.createPromoCode(ctx, payload)
	if err != nil {
		return translateOrderErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"promo code created",
		newPromo,
	)
}

func (h *handler) getAllPromoCodesHandler(w http.ResponseWriter, r *http.Request) error {
	promos, err := h.service.getAllPromoCodes(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all promo codes retrieved",
		promos,
	)
}

func (h *handler) createSlotHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateSlotRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	newSlot, err := h.service.createDeliverySlot(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"delivery slot created",
		newSlot,
	)
}

func (h *handler) getAvailableSlotsHandler(w http.ResponseWriter, r *http.Request) error {
	slots, err := h.service.getAvailableSlots(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"available delivery slots retrieved",
		slots,
	)
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		return uuid.Nil, servererrors.New(
			http.StatusNotFound,
			servererrors.ErrOrderNotFound.Error(),
			nil,
		)
	}

	return orderID, nil
}

func translateOrderErr(err error) error {
	switch {
	case errors.Is(err, servererrors.ErrOrderNotFound):
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrOrderNotFound.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrInsufficientStock):
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInsufficientStock.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrSlotUnavailable):
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrSlotUnavailable.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrInvalidStatusTransition):
		return servererrors.New(
			http.StatusConflict,
			servererrors.ErrInvalidStatusTransition.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrPromoCodeAlreadyExists):
		return servererrors.New(
			http.StatusConflict,
			servererrors.ErrPromoCodeAlreadyExists.Error(),
			nil,
		)
	}

	return err
}

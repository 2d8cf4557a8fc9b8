package review

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
	addReview(ctx context.Context, productID uuid.UUID, newReview *CreateReviewRequest) (*Review, error)
	getProductReviews(ctx context.Context, productID uuid.UUID) ([]*Review, error)
}

type handler struct {
	service servicer
}

func NewHandler(reviewService servicer) *handler {
	return &handler{
		service: reviewService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/products/{productID}/reviews",
		handlerutils.MakeHandler(
			h.addReviewHandler,
		),
	)

	router.Get(
		"/products/{productID}/reviews",
		handlerutils.MakeHandler(
			h.getProductReviewsHandler,
		),
	)
}

func (h *handler) addReviewHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	var payload *CreateReviewRequest
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

	newReview, err := h.service.addReview(ctx, productID, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"review added",
		newReview,
	)
}

func (h *handler) getProductReviewsHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	reviews, err := h.service.getProductReviews(r.Context(), productID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"reviews retrieved",
		reviews,
	)
}

func parseProductID(r *http.Request) (uuid.UUID, error) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return uuid.Nil, servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	return productID, nil
}

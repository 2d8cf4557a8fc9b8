package category

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/sampledev-eng/freshcart-express-backend/internal/handlerutils"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
	"github.com/sampledev-eng/freshcart-express-backend/internal/validate"
)

type servicer interface {
	createCategory(ctx context.Context, newCategory *CreateCategoryRequest) (*Category, error)
	getAllCategories(ctx context.Context) ([]*Category, error)
}

type handler struct {
	service servicer
}

func NewHandler(categoryService servicer) *handler {
	return &handler{
		service: categoryService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products/categories",
		handlerutils.MakeHandler(
			h.getAllCategoriesHandler,
		),
	)

	router.Post(
		"/products/categories",
		handlerutils.MakeHandler(
			h.createCategoryHandler,
		),
	)
}

func (h *handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateCategoryRequest
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

	newCategory, err := h.service.createCategory(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCategoryAlreadyExists):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrCategoryAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"category created",
		newCategory,
	)
}

func (h *handler) getAllCategoriesHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	categories, err := h.service.getAllCategories(ctx)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all categories retrieved",
		categories,
	)
}

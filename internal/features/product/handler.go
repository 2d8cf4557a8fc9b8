package product

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
	createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error)
	getAllProducts(ctx context.Context, queryItems *ListProductsQuery) ([]*Product, error)
	getProduct(ctx context.Context, productID uuid.UUID) (*ProductWithVariantsDTO, error)
	updateProduct(ctx context.Context, update *UpdateProductRequest) (*Product, error)
	deleteProduct(ctx context.Context, productID uuid.UUID) error
	addVariant(ctx context.Context, productID uuid.UUID, newVariant *CreateVariantRequest) (*Variant, error)
	getVariants(ctx context.Context, productID uuid.UUID) ([]*Variant, error)
}

type handler struct {
	service servicer
}

func NewHandler(productService servicer) *handler {
	return &handler{
		service: productService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		handlerutils.MakeHandler(
			h.getAllProductsHandler,
		),
	)

	router.Post(
		"/products",
		handlerutils.MakeHandler(
			h.createProductHandler,
		),
	)

	router.Get(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.getProductHandler,
		),
	)

	router.Put(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.updateProductHandler,
		),
	)

	router.Delete(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.deleteProductHandler,
		),
	)

	router.Post(
		"/products/{productID}/variants",
		handlerutils.MakeHandler(
			h.addVariantHandler,
		),
	)

	router.Get(
		"/products/{productID}/variants",
		handlerutils.MakeHandler(
			h.getVariantsHandler,
		),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateProductRequest
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

	newProduct, err := h.service.createProduct(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product created",
		newProduct,
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	queryItems, err := getQueryItems(r)
	if err != nil {
		return err
	}

	if err := validate.StructFields(queryItems); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrURLQueryParams.Error(),
			err,
		)
	}

	products, err := h.service.getAllProducts(ctx, queryItems)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all products retrieved",
		products,
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	product, err := h.service.getProduct(r.Context(), productID)
	if err != nil {
		return translateProductErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product found",
		product,
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	var payload *UpdateProductRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}
	payload.ProductID = productID

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	updatedProduct, err := h.service.updateProduct(ctx, payload)
	if err != nil {
		return translateProductErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product updated",
		updatedProduct,
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	if err := h.service.deleteProduct(ctx, productID); err != nil {
		return translateProductErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product deleted",
		nil,
	)
}

func (h *handler) addVariantHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	var payload *CreateVariantRequest
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

	newVariant, err := h.service.addVariant(ctx, productID, payload)
	if err != nil {
		return translateProductErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"variant created",
		newVariant,
	)
}

func (h *handler) getVariantsHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	variants, err := h.service.getVariants(r.Context(), productID)
	if err != nil {
		return translateProductErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"variants retrieved",
		variants,
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

func translateProductErr(err error) error {
	if errors.Is(err, servererrors.ErrProductNotFound) {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	return err
}

func getQueryItems(r *http.Request) (*ListProductsQuery, error) {
	queries := r.URL.Query()

	queryItems := &ListProductsQuery{
		Search: queries.Get("q"),
		SortBy: "name",
	}

	if sortBy := queries.Get("sort_by"); sortBy != "" {
		queryItems.SortBy = sortBy
	}

	if categoryIDStr := queries.Get("category_id"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			return nil, servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrURLQueryParams.Error(),
				nil,
			)
		}

		queryItems.CategoryID = uuid.NullUUID{UUID: categoryID, Valid: true}
	}

	return queryItems, nil
}

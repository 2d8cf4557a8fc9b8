package product

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sampledev-eng/freshcart-express-backend/internal/eventengine"
	"github.com/sampledev-eng/freshcart-express-backend/internal/eventengine/event"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
)

// lowStockThreshold is the remaining stock under which a placed order
// triggers a restock warning.
const lowStockThreshold = 5

type storer interface {
	createOne(ctx context.Context, newProduct *CreateProductRequest) (*Product, error)
	findAll(ctx context.Context, queryItems *ListProductsQuery) ([]*Product, error)
	findByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	updateOne(ctx context.Context, update *UpdateProductRequest) (bool, error)
	deleteOne(ctx context.Context, productID uuid.UUID) (bool, error)
	findLowStock(ctx context.Context, productIDs []uuid.UUID, threshold int) ([]*Product, error)
	createVariant(ctx context.Context, productID uuid.UUID, newVariant *CreateVariantRequest) (*Variant, error)
	findVariantsByProductID(ctx context.Context, productID uuid.UUID) ([]*Variant, error)
}

type service struct {
	store  storer
	events eventengine.RegisterPublisher
}

func NewService(store storer, events eventengine.RegisterPublisher) *service {
	events.RegisterEvents(
		event.ProductDeletedEventName,
	)

	return &service{
		store:  store,
		events: events,
	}
}

func (s *service) createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	newProduct.Name = strings.TrimSpace(newProduct.Name)
	newProduct.Description = strings.TrimSpace(newProduct.Description)

	return s.store.createOne(ctx, newProduct)
}

func (s *service) getAllProducts(ctx context.Context, queryItems *ListProductsQuery) ([]*Product, error) {
	return s.store.findAll(ctx, queryItems)
}

func (s *service) getProduct(ctx context.Context, productID uuid.UUID) (*ProductWithVariantsDTO, error) {
	product, err := s.store.findByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product == nil {
		return nil, servererrors.ErrProductNotFound
	}

	variants, err := s.store.findVariantsByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ProductWithVariantsDTO{
		Product:  *product,
		Variants: variants,
	}, nil
}

func (s *service) updateProduct(ctx context.Context, update *UpdateProductRequest) (*Product, error) {
	updated, err := s.store.updateOne(ctx, update)
	if err != nil {
		return nil, err
	}

	if !updated {
		return nil, servererrors.ErrProductNotFound
	}

	return s.store.findByID(ctx, update.ProductID)
}

func (s *service) deleteProduct(ctx context.Context, productID uuid.UUID) error {
	deleted, err := s.store.deleteOne(ctx, productID)
	if err != nil {
		return err
	}

	if !deleted {
		return servererrors.ErrProductNotFound
	}

	deletedEvent := &event.ProductDeletedEvent{
		ProductID: productID,
	}

	if err := s.events.Publish(
		&event.Event{
			Name:    deletedEvent.GetEventName(),
			Payload: deletedEvent,
		},
	); err != nil {
		log.Println("failed to publish product deleted event:", err)
	}

	return nil
}

func (s *service) addVariant(ctx context.Context, productID uuid.UUID, newVariant *CreateVariantRequest) (*Variant, error) {
	product, err := s.store.findByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product == nil {
		return nil, servererrors.ErrProductNotFound
	}

	return s.store.createVariant(ctx, productID, newVariant)
}

func (s *service) getVariants(ctx context.Context, productID uuid.UUID) ([]*Variant, error) {
	product, err := s.store.findByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product == nil {
		return nil, servererrors.ErrProductNotFound
	}

	return s.store.findVariantsByProductID(ctx, productID)
}

// logLowStock warns about any of the given products whose stock has fallen
// under the restock threshold.
func (s *service) logLowStock(ctx context.Context, productIDs []uuid.UUID) error {
	lowStock, err := s.store.findLowStock(ctx, productIDs, lowStockThreshold)
	if err != nil {
		return err
	}

	for _, product := range lowStock {
		log.Printf(
			"low stock warning: product %q (%s) has %d unit(s) left\n",
			product.Name,
			product.ProductID,
			product.Stock,
		)
	}

	return nil
}

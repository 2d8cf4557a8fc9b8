package product

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sampledev-eng/freshcart-express-backend/internal/eventengine/event"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
)

type fakeStore struct {
	products map[uuid.UUID]*Product
	variants map[uuid.UUID][]*Variant
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[uuid.UUID]*Product),
		variants: make(map[uuid.UUID][]*Variant),
	}
}

func (f *fakeStore) createOne(_ context.Context, newProduct *CreateProductRequest) (*Product, error) {
	product := &Product{
		ProductID:   uuid.New(),
		Name:        newProduct.Name,
		Description: newProduct.Description,
		Price:       newProduct.Price,
		Stock:       newProduct.Stock,
	}
	if newProduct.CategoryID != nil {
		product.CategoryID = uuid.NullUUID{UUID: *newProduct.CategoryID, Valid: true}
	}
	f.products[product.ProductID] = product

	return product, nil
}

func (f *fakeStore) findAll(_ context.Context, queryItems *ListProductsQuery) ([]*Product, error) {
	matched := []*Product{}
	for _, p := range f.products {
		if queryItems.Search != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(queryItems.Search)) {
			continue
		}
		if queryItems.CategoryID.Valid && p.CategoryID != queryItems.CategoryID {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		if queryItems.SortBy == "price" {
			return matched[i].Price < matched[j].Price
		}
		return matched[i].Name < matched[j].Name
	})

	return matched, nil
}

func (f *fakeStore) findByID(_ context.Context, productID uuid.UUID) (*Product, error) {
	return f.products[productID], nil
}

func (f *fakeStore) updateOne(_ context.Context, update *UpdateProductRequest) (bool, error) {
	p, ok := f.products[update.ProductID]
	if !ok {
		return false, nil
	}

	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Stock != nil {
		p.Stock = *update.Stock
	}

	return true, nil
}

func (f *fakeStore) deleteOne(_ context.Context, productID uuid.UUID) (bool, error) {
	if _, ok := f.products[productID]; !ok {
		return false, nil
	}

	delete(f.products, productID)

	return true, nil
}

func (f *fakeStore) findLowStock(_ context.Context, productIDs []uuid.UUID, threshold int) ([]*Product, error) {
	low := []*Product{}
	for _, id := range productIDs {
		if p, ok := f.products[id]; ok && p.Stock < threshold {
			low = append(low, p)
		}
	}

	return low, nil
}

func (f *fakeStore) createVariant(_ context.Context, productID uuid.UUID, newVariant *CreateVariantRequest) (*Variant, error) {
	variant := &Variant{
		VariantID: uuid.New(),
		ProductID: productID,
		Name:      newVariant.Name,
		Price:     newVariant.Price,
		Stock:     newVariant.Stock,
	}
	f.variants[productID] = append(f.variants[productID], variant)

	return variant, nil
}

func (f *fakeStore) findVariantsByProductID(_ context.Context, productID uuid.UUID) ([]*Variant, error) {
	return f.variants[productID], nil
}

// fakeEngine records published events and accepts any registration.
type fakeEngine struct {
	published []*event.Event
}

func (f *fakeEngine) RegisterEvents(_ ...event.EventName) {}

func (f *fakeEngine) Publish(e *event.Event) error {
	f.published = append(f.published, e)
	return nil
}

func Test_service_CreateThenSearch(t *testing.T) {
	store := newFakeStore()
	productService := NewService(store, &fakeEngine{})
	ctx := context.Background()

	created, err := productService.createProduct(ctx, &CreateProductRequest{
		Name:  "Apple",
		Price: 1.5,
		Stock: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := productService.createProduct(ctx, &CreateProductRequest{
		Name:  "Banana",
		Price: 2.0,
		Stock: 5,
	}); err != nil {
		t.Fatal(err)
	}

	found, err := productService.getAllProducts(ctx, &ListProductsQuery{
		Search: "app",
		SortBy: "name",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(found) != 1 || found[0].ProductID != created.ProductID {
		t.Fatalf("expected the search to return Apple only, got %d product(s)", len(found))
	}
}

func Test_service_ListSortsByPrice(t *testing.T) {
	store := newFakeStore()
	productService := NewService(store, &fakeEngine{})
	ctx := context.Background()

	for _, p := range []CreateProductRequest{
		{Name: "Cherry", Price: 4.0, Stock: 1},
		{Name: "Apple", Price: 1.5, Stock: 1},
		{Name: "Banana", Price: 2.0, Stock: 1},
	} {
		if _, err := productService.createProduct(ctx, &p); err != nil {
			t.Fatal(err)
		}
	}

	byPrice, err := productService.getAllProducts(ctx, &ListProductsQuery{SortBy: "price"})
	if err != nil {
		t.Fatal(err)
	}

	prices := []float64{}
	for _, p := range byPrice {
		prices = append(prices, p.Price)
	}
	if !sort.Float64sAreSorted(prices) {
		t.Errorf("expected products sorted by price ascending, got %v", prices)
	}
}

func Test_service_UpdateUnknownProduct(t *testing.T) {
	productService := NewService(newFakeStore(), &fakeEngine{})

	name := "Renamed"
	_, err := productService.updateProduct(context.Background(), &UpdateProductRequest{
		ProductID: uuid.New(),
		Name:      &name,
	})
	if !errors.Is(err, servererrors.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func Test_service_UpdateWithNoFields(t *testing.T) {
	store := newFakeStore()
	productService := NewService(store, &fakeEngine{})
	ctx := context.Background()

	// No fields set on an unknown product is still a 404, not a silent 200.
	_, err := productService.updateProduct(ctx, &UpdateProductRequest{
		ProductID: uuid.New(),
	})
	if !errors.Is(err, servererrors.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound for an empty update of an unknown product, got %v", err)
	}

	created, err := productService.createProduct(ctx, &CreateProductRequest{
		Name:  "Apple",
		Price: 1.5,
		Stock: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	unchanged, err := productService.updateProduct(ctx, &UpdateProductRequest{
		ProductID: created.ProductID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if unchanged.Name != "Apple" || unchanged.Price != 1.5 || unchanged.Stock != 10 {
		t.Error("empty update changed product fields")
	}
}

func Test_service_DeletePublishesEvent(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{}
	productService := NewService(store, engine)
	ctx := context.Background()

	created, err := productService.createProduct(ctx, &CreateProductRequest{
		Name:  "Apple",
		Price: 1.5,
		Stock: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := productService.deleteProduct(ctx, created.ProductID); err != nil {
		t.Fatal(err)
	}

	if len(engine.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(engine.published))
	}

	deletedEvent, ok := engine.published[0].Payload.(*event.ProductDeletedEvent)
	if !ok {
		t.Fatalf("expected a ProductDeletedEvent payload, got %T", engine.published[0].Payload)
	}
	if deletedEvent.ProductID != created.ProductID {
		t.Error("deleted event carries the wrong product id")
	}

	if err := productService.deleteProduct(ctx, created.ProductID); !errors.Is(err, servererrors.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound on second delete, got %v", err)
	}
}

func Test_service_VariantsRequireProduct(t *testing.T) {
	productService := NewService(newFakeStore(), &fakeEngine{})
	ctx := context.Background()

	_, err := productService.addVariant(ctx, uuid.New(), &CreateVariantRequest{
		Name:  "500g pack",
		Price: 3.0,
		Stock: 5,
	})
	if !errors.Is(err, servererrors.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	created, err := productService.createProduct(ctx, &CreateProductRequest{
		Name:  "Apple",
		Price: 1.5,
		Stock: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := productService.addVariant(ctx, created.ProductID, &CreateVariantRequest{
		Name:  "500g pack",
		Price: 3.0,
		Stock: 5,
	}); err != nil {
		t.Fatal(err)
	}

	withVariants, err := productService.getProduct(ctx, created.ProductID)
	if err != nil {
		t.Fatal(err)
	}
	if len(withVariants.Variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(withVariants.Variants))
	}
}

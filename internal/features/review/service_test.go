package review

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sampledev-eng/freshcart-express-backend/internal/eventengine"
	"github.com/sampledev-eng/freshcart-express-backend/internal/eventengine/event"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
)

// fakeStore is mutex protected because the event handler calls it from its
// own goroutine.
type fakeStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]bool
	reviews  map[uuid.UUID][]*Review
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[uuid.UUID]bool),
		reviews:  make(map[uuid.UUID][]*Review),
	}
}

func (f *fakeStore) addProduct() uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	productID := uuid.New()
	f.products[productID] = true

	return productID
}

func (f *fakeStore) seedReview(productID uuid.UUID, rating int, comment string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reviews[productID] = append(f.reviews[productID], &Review{
		ReviewID:  uuid.New(),
		UserID:    uuid.New(),
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	})
}

func (f *fakeStore) reviewCount(productID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.reviews[productID])
}

func (f *fakeStore) productExists(_ context.Context, productID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.products[productID], nil
}

func (f *fakeStore) createOne(_ context.Context, productID uuid.UUID, newReview *CreateReviewRequest) (*Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	review := &Review{
		ReviewID:  uuid.New(),
		UserID:    newReview.UserID,
		ProductID: productID,
		Rating:    newReview.Rating,
		Comment:   newReview.Comment,
		CreatedAt: time.Now(),
	}
	f.reviews[productID] = append(f.reviews[productID], review)

	return review, nil
}

func (f *fakeStore) findByProductID(_ context.Context, productID uuid.UUID) ([]*Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*Review{}, f.reviews[productID]...), nil
}

func (f *fakeStore) deleteByProductID(_ context.Context, productID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	deleted := int64(len(f.reviews[productID]))
	delete(f.reviews, productID)

	return deleted, nil
}

func Test_service_AddReviewRequiresProduct(t *testing.T) {
	store := newFakeStore()
	reviewService := NewService(store)
	ctx := context.Background()

	_, err := reviewService.addReview(ctx, uuid.New(), &CreateReviewRequest{
		UserID: uuid.New(),
		Rating: 4,
	})
	if !errors.Is(err, servererrors.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	productID := store.addProduct()
	created, err := reviewService.addReview(ctx, productID, &CreateReviewRequest{
		UserID:  uuid.New(),
		Rating:  5,
		Comment: "crisp and fresh",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Rating != 5 || created.ProductID != productID {
		t.Error("created review does not carry the request fields")
	}

	reviews, err := reviewService.getProductReviews(ctx, productID)
	if err != nil {
		t.Fatal(err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
}

func Test_service_RemoveProductReviews(t *testing.T) {
	store := newFakeStore()
	reviewService := NewService(store)
	ctx := context.Background()

	productID := store.addProduct()
	otherProductID := store.addProduct()
	store.seedReview(productID, 5, "fresh")
	store.seedReview(productID, 2, "bruised")
	store.seedReview(otherProductID, 4, "fine")

	if err := reviewService.removeProductReviews(ctx, productID); err != nil {
		t.Fatal(err)
	}

	if got := store.reviewCount(productID); got != 0 {
		t.Errorf("expected 0 reviews left, got %d", got)
	}
	if got := store.reviewCount(otherProductID); got != 1 {
		t.Errorf("cleanup touched another product's reviews, %d left", got)
	}

	// removing again is a no-op
	if err := reviewService.removeProductReviews(ctx, productID); err != nil {
		t.Fatal(err)
	}
}

func Test_handlerEvents_ProductDeleteCleansUpReviews(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
		},
	)
	engine.RegisterEvents(event.ProductDeletedEventName)

	store := newFakeStore()
	reviewService := NewService(store)

	NewHandlerEvents(&HandlerEventsConfig{
		DoneCh:        doneCh,
		InternalSrvWG: &internalSrvWG,
		EventEngine:   engine,
		Service:       reviewService,
	})

	productID := uuid.New()
	otherProductID := uuid.New()
	store.seedReview(productID, 5, "fresh")
	store.seedReview(productID, 2, "bruised")
	store.seedReview(otherProductID, 4, "fine")

	// The subscriber attaches from its own goroutine, so keep publishing
	// until the cleanup is observed instead of racing a single event
	// against the subscription. removeProductReviews is idempotent.
	deadline := time.After(2 * time.Second)
	for store.reviewCount(productID) > 0 {
		err := engine.Publish(
			&event.Event{
				Name:    event.ProductDeletedEventName,
				Payload: &event.ProductDeletedEvent{ProductID: productID},
			},
		)
		if err != nil {
			t.Fatal(err)
		}

		select {
		case <-deadline:
			t.Fatal("timed out waiting for the review cleanup")
		case <-time.After(10 * time.Millisecond):
		}
	}

	close(doneCh)
	internalSrvWG.Wait()

	if got := store.reviewCount(otherProductID); got != 1 {
		t.Errorf("cleanup touched another product's reviews, %d left", got)
	}
}

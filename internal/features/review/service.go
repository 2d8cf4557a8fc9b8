package review

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
)

type storer interface {
	productExists(ctx context.Context, productID uuid.UUID) (bool, error)
	createOne(ctx context.Context, productID uuid.UUID, newReview *CreateReviewRequest) (*Review, error)
	findByProductID(ctx context.Context, productID uuid.UUID) ([]*Review, error)
	deleteByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) addReview(ctx context.Context, productID uuid.UUID, newReview *CreateReviewRequest) (*Review, error) {
	exists, err := s.store.productExists(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, servererrors.ErrProductNotFound
	}

	return s.store.createOne(ctx, productID, newReview)
}

func (s *service) getProductReviews(ctx context.Context, productID uuid.UUID) ([]*Review, error) {
	return s.store.findByProductID(ctx, productID)
}

// removeProductReviews cleans up reviews left behind by a product hard
// delete.
func (s *service) removeProductReviews(ctx context.Context, productID uuid.UUID) error {
	deleted, err := s.store.deleteByProductID(ctx, productID)
	if err != nil {
		return err
	}

	if deleted > 0 {
		log.Printf(
			"removed %d review(s) for deleted product %s\n",
			deleted,
			productID,
		)
	}

	return nil
}

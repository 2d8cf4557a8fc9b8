package review

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *store {
	return &store{
		db: db,
	}
}

func (s *store) productExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE product_id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf(
			"failed to check product existence in review store: %w",
			err,
		)
	}

	return exists, nil
}

func (s *store) createOne(ctx context.Context, productID uuid.UUID, newReview *CreateReviewRequest) (*Review, error) {
	query := `INSERT INTO reviews(user_id, product_id, rating, comment)
		VALUES($1, $2, $3, $4)
		RETURNING review_id, user_id, product_id, rating, comment, created_at`

	var review Review
	err := s.db.QueryRowContext(
		ctx,
		query,
		newReview.UserID,
		productID,
		newReview.Rating,
		newReview.Comment,
	).Scan(
		&review.ReviewID,
		&review.UserID,
		&review.ProductID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new review in review store: %w",
			err,
		)
	}

	return &review, nil
}

func (s *store) findByProductID(ctx context.Context, productID uuid.UUID) ([]*Review, error) {
	query := `SELECT review_id, user_id, product_id, rating, comment, created_at
		FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get reviews from review store: %w",
			err,
		)
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		var review Review
		err := rows.Scan(
			&review.ReviewID,
			&review.UserID,
			&review.ProductID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan review from review store: %w",
				err,
			)
		}

		reviews = append(reviews, &review)
	}

	return reviews, rows.Err()
}

func (s *store) deleteByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	query := `DELETE FROM reviews WHERE product_id = $1`

	result, err := s.db.ExecContext(ctx, query, productID)
	if err != nil {
		return 0, fmt.Errorf(
			"failed to delete reviews in review store: %w",
			err,
		)
	}

	return result.RowsAffected()
}

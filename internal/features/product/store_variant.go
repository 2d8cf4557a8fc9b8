package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

func (s *store) createVariant(ctx context.Context, productID uuid.UUID, newVariant *CreateVariantRequest) (*Variant, error) {
	query := `INSERT INTO product_variants(product_id, name, price, stock)
		VALUES($1, $2, $3, $4)
		RETURNING variant_id, product_id, name, price, stock`

	var variant Variant
	err := s.db.QueryRowContext(
		ctx,
		query,
		productID,
		newVariant.Name,
		newVariant.Price,
		newVariant.Stock,
	).Scan(
		&variant.VariantID,
		&variant.ProductID,
		&variant.Name,
		&variant.Price,
		&variant.Stock,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new variant in product store: %w",
			err,
		)
	}

	return &variant, nil
}

func (s *store) findVariantsByProductID(ctx context.Context, productID uuid.UUID) ([]*Variant, error) {
	query := `SELECT variant_id, product_id, name, price, stock
		FROM product_variants WHERE product_id = $1`

	rows, err := s.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get variants from product store: %w",
			err,
		)
	}
	defer rows.Close()

	variants := []*Variant{}
	for rows.Next() {
		var variant Variant
		err := rows.Scan(
			&variant.VariantID,
			&variant.ProductID,
			&variant.Name,
			&variant.Price,
			&variant.Stock,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan variant from product store: %w",
				err,
			)
		}

		variants = append(variants, &variant)
	}

	return variants, rows.Err()
}

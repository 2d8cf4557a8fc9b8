package order

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *store) createPromoCode(ctx context.Context, req *CreatePromoCodeRequest) (*PromoCode, error) {
	query := `INSERT INTO promo_codes(code, discount_percent, active)
		VALUES($1, $2, $3)
		RETURNING promo_code_id, code, discount_percent, active`

	var promo PromoCode
	err := s.db.QueryRowContext(
		ctx,
		query,
		req.Code,
		req.DiscountPercent,
		req.Active,
	).Scan(
		&promo.PromoCodeID,
		&promo.Code,
		&promo.DiscountPercent,
		&promo.Active,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert promo code in order store: %w",
			err,
		)
	}

	return &promo, nil
}

func (s *store) findPromoCodeByCode(ctx context.Context, code string) (*PromoCode, error) {
	query := `SELECT promo_code_id, code, discount_percent, active
		FROM promo_codes WHERE code = $1`

	var promo PromoCode
	err := s.db.QueryRowContext(ctx, query, code).Scan(
		&promo.PromoCodeID,
		&promo.Code,
		&promo.DiscountPercent,
		&promo.Active,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"failed to scan promo code from order store: %w",
			err,
		)
	}

	return &promo, nil
}

func (s *store) findAllPromoCodes(ctx context.Context) ([]*PromoCode, error) {
	query := `SELECT promo_code_id, code, discount_percent, active
		FROM promo_codes ORDER BY code`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get promo codes from order store: %w",
			err,
		)
	}
	defer rows.Close()

	promos := []*PromoCode{}
	for rows.Next() {
		var promo PromoCode
		err := rows.Scan(
			&promo.PromoCodeID,
			&promo.Code,
			&promo.DiscountPercent,
			&promo.Active,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan promo code from order store: %w",
				err,
			)
		}

		promos = append(promos, &promo)
	}

	return promos, rows.Err()
}

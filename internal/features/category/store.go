package category

import (
	"context"
	"database/sql"
	"fmt"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *store {
	return &store{
		db: db,
	}
}

func (s *store) createOne(ctx context.Context, name string) (*Category, error) {
	query := `INSERT INTO categories(name) VALUES($1) RETURNING category_id, name`

	var category Category
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&category.CategoryID,
		&category.Name,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new category in category store: %w",
			err,
		)
	}

	return &category, nil
}

func (s *store) findByName(ctx context.Context, name string) (*Category, error) {
	query := `SELECT category_id, name FROM categories WHERE name = $1`

	var category Category
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&category.CategoryID,
		&category.Name,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"failed to scan category from category store: %w",
			err,
		)
	}

	return &category, nil
}

func (s *store) findAll(ctx context.Context) ([]*Category, error) {
	query := `SELECT category_id, name FROM categories ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all categories from category store: %w",
			err,
		)
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.CategoryID, &category.Name); err != nil {
			return nil, fmt.Errorf(
				"failed to scan category from category store: %w",
				err,
			)
		}

		categories = append(categories, &category)
	}

	return categories, rows.Err()
}

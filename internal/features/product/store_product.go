package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *store {
	return &store{
		db: db,
	}
}

func (s *store) createOne(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	query := `INSERT INTO products(name, description, price, stock, category_id)
		VALUES($1, $2, $3, $4, $5)
		RETURNING product_id, name, description, price, stock, category_id`

	var categoryID uuid.NullUUID
	if newProduct.CategoryID != nil {
		categoryID = uuid.NullUUID{UUID: *newProduct.CategoryID, Valid: true}
	}

	var product Product
	err := s.db.QueryRowContext(
		ctx,
		query,
		newProduct.Name,
		newProduct.Description,
		newProduct.Price,
		newProduct.Stock,
		categoryID,
	).Scan(
		&product.ProductID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.CategoryID,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new product in product store: %w",
			err,
		)
	}

	return &product, nil
}

func (s *store) findAll(ctx context.Context, queryItems *ListProductsQuery) ([]*Product, error) {
	query, queryParams := generateQueryAndParams(queryItems)

	rows, err := s.db.QueryContext(ctx, query, queryParams...)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all products from product store: %w",
			err,
		)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		var product Product
		if err := scanRowsIntoProduct(rows, &product); err != nil {
			return nil, fmt.Errorf(
				"failed to scan product from product store: %w",
				err,
			)
		}

		products = append(products, &product)
	}

	return products, rows.Err()
}

func (s *store) findByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	query := `SELECT product_id, name, description, price, stock, category_id
		FROM products WHERE product_id = $1`

	var product Product
	err := s.db.QueryRowContext(ctx, query, productID).Scan(
		&product.ProductID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.CategoryID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"failed to scan product from product store: %w",
			err,
		)
	}

	return &product, nil
}

func (s *store) updateOne(ctx context.Context, update *UpdateProductRequest) (bool, error) {
	setClauses := []string{}
	queryParams := []any{}

	addSet := func(column string, value any) {
		queryParams = append(queryParams, value)
		setClauses = append(
			setClauses,
			fmt.Sprintf("%s = $%d", column, len(queryParams)),
		)
	}

	if update.Name != nil {
		addSet("name", *update.Name)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.Price != nil {
		addSet("price", *update.Price)
	}
	if update.Stock != nil {
		addSet("stock", *update.Stock)
	}
	if update.CategoryID != nil {
		addSet("category_id", *update.CategoryID)
	}

	// An update with no fields still has to report whether the product
	// exists, so the absent case surfaces as a 404 instead of a 200.
	if len(setClauses) == 0 {
		var exists bool
		existsQuery := `SELECT EXISTS(SELECT 1 FROM products WHERE product_id = $1)`
		if err := s.db.QueryRowContext(ctx, existsQuery, update.ProductID).Scan(&exists); err != nil {
			return false, fmt.Errorf(
				"failed to check product existence in product store: %w",
				err,
			)
		}

		return exists, nil
	}

	queryParams = append(queryParams, update.ProductID)
	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE product_id = $%d",
		strings.Join(setClauses, ", "),
		len(queryParams),
	)

	result, err := s.db.ExecContext(ctx, query, queryParams...)
	if err != nil {
		return false, fmt.Errorf(
			"failed to update product in product store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

func (s *store) deleteOne(ctx context.Context, productID uuid.UUID) (bool, error) {
	query := `DELETE FROM products WHERE product_id = $1`

	result, err := s.db.ExecContext(ctx, query, productID)
	if err != nil {
		return false, fmt.Errorf(
			"failed to delete product in product store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

func (s *store) findLowStock(ctx context.Context, productIDs []uuid.UUID, threshold int) ([]*Product, error) {
	query := `SELECT product_id, name, description, price, stock, category_id
		FROM products WHERE product_id = ANY($1) AND stock < $2`

	ids := make([]string, len(productIDs))
	for i, id := range productIDs {
		ids[i] = id.String()
	}

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids), threshold)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get low stock products from product store: %w",
			err,
		)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		var product Product
		if err := scanRowsIntoProduct(rows, &product); err != nil {
			return nil, err
		}

		products = append(products, &product)
	}

	return products, rows.Err()
}

func scanRowsIntoProduct(rows *sql.Rows, product *Product) error {
	return rows.Scan(
		&product.ProductID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.CategoryID,
	)
}

func generateQueryAndParams(queryItems *ListProductsQuery) (string, []any) {
	defaultQuery := `SELECT product_id, name, description, price, stock, category_id FROM products`

	whereClauses := []string{}
	queryParams := []any{}

	if queryItems.Search != "" {
		queryParams = append(
			queryParams,
			fmt.Sprintf("%%%s%%", queryItems.Search),
		)
		whereClauses = append(
			whereClauses,
			fmt.Sprintf("name ILIKE $%d", len(queryParams)),
		)
	}

	if queryItems.CategoryID.Valid {
		queryParams = append(queryParams, queryItems.CategoryID.UUID)
		whereClauses = append(
			whereClauses,
			fmt.Sprintf("category_id = $%d", len(queryParams)),
		)
	}

	if len(whereClauses) > 0 {
		defaultQuery += fmt.Sprintf(
			" WHERE %s",
			strings.Join(whereClauses, " AND "),
		)
	}

	// SortBy is validated against the name|price whitelist before it gets
	// anywhere near this query.
	defaultQuery += fmt.Sprintf(" ORDER BY %s ASC", queryItems.SortBy)

	return defaultQuery, queryParams
}

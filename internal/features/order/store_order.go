package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *store {
	return &store{
		db: db,
	}
}

// createOne places an order inside one transaction. Each item's stock is
// taken with a conditional decrement so two concurrent orders can never
// both pass the stock check; zero affected rows means the product is
// missing or short on stock, and the whole transaction rolls back.
func (s *store) createOne(ctx context.Context, req *CreateOrderRequest, discountPercent int) (*Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	orderQuery := `INSERT INTO orders(user_id, status) VALUES($1, $2)
		RETURNING order_id, created_at`

	order := &Order{
		UserID: req.UserID,
		Status: StatusPlaced,
	}
	err = tx.QueryRowContext(
		ctx,
		orderQuery,
		req.UserID,
		StatusPlaced,
	).Scan(&order.OrderID, &order.CreatedAt)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf(
			"failed to insert new order in order store: %w",
			err,
		)
	}

	stockQuery := `UPDATE products SET stock = stock - $1
		WHERE product_id = $2 AND stock >= $1
		RETURNING price`

	itemQuery := `INSERT INTO order_items(order_id, product_id, quantity, price)
		VALUES($1, $2, $3, $4)
		RETURNING order_item_id`

	for _, item := range req.Items {
		var price float64
		err = tx.QueryRowContext(
			ctx,
			stockQuery,
			item.Quantity,
			item.ProductID,
		).Scan(&price)
		if err != nil {
			tx.Rollback()
			if err == sql.ErrNoRows {
				return nil, servererrors.ErrInsufficientStock
			}

			return nil, fmt.Errorf(
				"failed to decrement stock in order store: %w",
				err,
			)
		}

		orderItem := &OrderItem{
			OrderID:   order.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		}
		err = tx.QueryRowContext(
			ctx,
			itemQuery,
			order.OrderID,
			item.ProductID,
			item.Quantity,
			price,
		).Scan(&orderItem.OrderItemID)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf(
				"failed to insert order item in order store: %w",
				err,
			)
		}

		order.Items = append(order.Items, orderItem)
	}

	order.Total = computeTotal(order.Items, discountPercent)

	totalQuery := `UPDATE orders SET total = $1 WHERE order_id = $2`
	if _, err := tx.ExecContext(ctx, totalQuery, order.Total, order.OrderID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf(
			"failed to set order total in order store: %w",
			err,
		)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *store) findByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	orderQuery := `SELECT order_id, user_id, status, created_at, total, delivery_slot_id, COALESCE(tracking_number, '')
		FROM orders WHERE order_id = $1`

	var order Order
	err := s.db.QueryRowContext(ctx, orderQuery, orderID).Scan(
		&order.OrderID,
		&order.UserID,
		&order.Status,
		&order.CreatedAt,
		&order.Total,
		&order.DeliverySlotID,
		&order.TrackingNumber,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"failed to scan order from order store: %w",
			err,
		)
	}

	itemsQuery := `SELECT order_item_id, order_id, product_id, quantity, price
		FROM order_items WHERE order_id = $1`

	rows, err := s.db.QueryContext(ctx, itemsQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get order items from order store: %w",
			err,
		)
	}
	defer rows.Close()

	order.Items = []*OrderItem{}
	for rows.Next() {
		var item OrderItem
		err := rows.Scan(
			&item.OrderItemID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.Price,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan order item from order store: %w",
				err,
			)
		}

		order.Items = append(order.Items, &item)
	}

	return &order, rows.Err()
}

// updateStatus moves an order from one status to another with a conditional
// update, so a concurrent transition never gets silently overwritten.
func (s *store) updateStatus(ctx context.Context, orderID uuid.UUID, from, to OrderStatus) (bool, error) {
	query := `UPDATE orders SET status = $1 WHERE order_id = $2 AND status = $3`

	result, err := s.db.ExecContext(ctx, query, to, orderID, from)
	if err != nil {
		return false, fmt.Errorf(
			"failed to update order status in order store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// cancelAndRestock cancels a placed order and returns every line item's
// quantity to its product, all in one transaction.
func (s *store) cancelAndRestock(ctx context.Context, orderID uuid.UUID) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}

	statusQuery := `UPDATE orders SET status = $1 WHERE order_id = $2 AND status = $3`

	result, err := tx.ExecContext(
		ctx,
		statusQuery,
		StatusCancelled,
		orderID,
		StatusPlaced,
	)
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf(
			"failed to cancel order in order store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return false, err
	}

	if rowsAffected == 0 {
		tx.Rollback()
		return false, nil
	}

	restockQuery := `UPDATE products p SET stock = p.stock + oi.quantity
		FROM order_items oi
		WHERE oi.order_id = $1 AND p.product_id = oi.product_id`

	if _, err := tx.ExecContext(ctx, restockQuery, orderID); err != nil {
		tx.Rollback()
		return false, fmt.Errorf(
			"failed to restock order items in order store: %w",
			err,
		)
	}

	return true, tx.Commit()
}

// assignSlot claims an available slot for the order with a conditional
// update; of two concurrent claims on the same slot exactly one sees an
// affected row.
func (s *store) assignSlot(ctx context.Context, orderID, slotID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	var orderExists bool
	existsQuery := `SELECT EXISTS(SELECT 1 FROM orders WHERE order_id = $1)`
	if err := tx.QueryRowContext(ctx, existsQuery, orderID).Scan(&orderExists); err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to check order existence in order store: %w",
			err,
		)
	}

	if !orderExists {
		tx.Rollback()
		return servererrors.ErrOrderNotFound
	}

	claimQuery := `UPDATE delivery_slots SET available = FALSE, order_id = $1
		WHERE slot_id = $2 AND available`

	result, err := tx.ExecContext(ctx, claimQuery, orderID, slotID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to claim delivery slot in order store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}

	if rowsAffected == 0 {
		tx.Rollback()
		return servererrors.ErrSlotUnavailable
	}

	linkQuery := `UPDATE orders SET delivery_slot_id = $1 WHERE order_id = $2`
	if _, err := tx.ExecContext(ctx, linkQuery, slotID, orderID); err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to link delivery slot in order store: %w",
			err,
		)
	}

	return tx.Commit()
}

package order

import (
	"context"
	"fmt"
)

func (s *store) createSlot(ctx context.Context, req *CreateSlotRequest) (*DeliverySlot, error) {
	query := `INSERT INTO delivery_slots(slot_time)
		VALUES($1)
		RETURNING slot_id, slot_time, available, order_id`

	var slot DeliverySlot
	err := s.db.QueryRowContext(ctx, query, req.SlotTime).Scan(
		&slot.SlotID,
		&slot.SlotTime,
		&slot.Available,
		&slot.OrderID,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert delivery slot in order store: %w",
			err,
		)
	}

	return &slot, nil
}

func (s *store) findAvailableSlots(ctx context.Context) ([]*DeliverySlot, error) {
	query := `SELECT slot_id, slot_time, available, order_id
		FROM delivery_slots WHERE available ORDER BY slot_time`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get delivery slots from order store: %w",
			err,
		)
	}
	defer rows.Close()

	slots := []*DeliverySlot{}
	for rows.Next() {
		var slot DeliverySlot
		err := rows.Scan(
			&slot.SlotID,
			&slot.SlotTime,
			&slot.Available,
			&slot.OrderID,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan delivery slot from order store: %w",
				err,
			)
		}

		slots = append(slots, &slot)
	}

	return slots, rows.Err()
}

package delivery

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/warehouse-ops/constant"
	"github.com/muhammadheryan/warehouse-ops/model"
)

type SQL struct {
	conn *sqlx.DB
}

type DeliveryRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, delivery *model.InternalDelivery) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.InternalDelivery, error)
	LockByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.InternalDelivery, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.DeliveryStatus) error
	UpdateCollectionTx(ctx context.Context, tx *sqlx.Tx, id uint64, amount float64, mode string, collectedAt time.Time) error
	InsertEventTx(ctx context.Context, tx *sqlx.Tx, event *model.DeliveryEvent) error
	ListEvents(ctx context.Context, deliveryID uint64) ([]model.DeliveryEvent, error)
}

func NewDeliveryRepository(conn *sqlx.DB) DeliveryRepository {
	return &SQL{conn: conn}
}

const (
	deliveryColumns = `id, order_id, assigned_to, status, amount_collected, payment_mode, payment_collected_at, created_at, updated_at`

	insertDeliveryQuery = `INSERT INTO internal_delivery (order_id, assigned_to, status, created_at) VALUES (?, ?, ?, NOW())`

	insertEventQuery = `INSERT INTO delivery_event (delivery_id, status, notes, created_by, created_at) VALUES (?, ?, ?, ?, NOW())`
)

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, d *model.InternalDelivery) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertDeliveryQuery, d.OrderID, d.AssignedTo, d.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.InternalDelivery, error) {
	var d model.InternalDelivery
	if err := r.conn.QueryRowxContext(ctx, "SELECT "+deliveryColumns+" FROM internal_delivery WHERE id = ?", id).StructScan(&d); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *SQL) LockByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.InternalDelivery, error) {
	var d model.InternalDelivery
	if err := tx.QueryRowxContext(ctx, "SELECT "+deliveryColumns+" FROM internal_delivery WHERE id = ? FOR UPDATE", id).StructScan(&d); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.DeliveryStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE internal_delivery SET status = ?, updated_at = NOW() WHERE id = ?", status, id)
	return err
}

func (r *SQL) UpdateCollectionTx(ctx context.Context, tx *sqlx.Tx, id uint64, amount float64, mode string, collectedAt time.Time) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE internal_delivery SET status = ?, amount_collected = ?, payment_mode = ?, payment_collected_at = ?, updated_at = NOW() WHERE id = ?",
		constant.DeliveryStatusPaymentCollected, amount, mode, collectedAt, id)
	return err
}

func (r *SQL) InsertEventTx(ctx context.Context, tx *sqlx.Tx, e *model.DeliveryEvent) error {
	_, err := tx.ExecContext(ctx, insertEventQuery, e.DeliveryID, e.Status, e.Notes, e.CreatedBy)
	return err
}

func (r *SQL) ListEvents(ctx context.Context, deliveryID uint64) ([]model.DeliveryEvent, error) {
	rows, err := r.conn.QueryxContext(ctx, "SELECT id, delivery_id, status, notes, created_by, created_at FROM delivery_event WHERE delivery_id = ? ORDER BY id", deliveryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.DeliveryEvent, 0)
	for rows.Next() {
		var e model.DeliveryEvent
		if err := rows.StructScan(&e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

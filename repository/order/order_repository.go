package order

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

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, order *model.OrderEntity) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItemRequest) error
	NextOrderSeqTx(ctx context.Context, tx *sqlx.Tx, year int) (int64, error)
	GetByID(ctx context.Context, id uint64) (*model.OrderEntity, error)
	GetByNumber(ctx context.Context, orderNumber string) (*model.OrderEntity, error)
	LockByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.OrderEntity, error)
	GetItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error)
	GetItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItem, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error
	UpdateCourierTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, req *model.DispatchRequest, dispatchDate time.Time) error
	UpdateAWBTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, awbNumber string) error
	UpdatePaymentStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.PaymentStatus) error
	InsertStatusHistoryTx(ctx context.Context, tx *sqlx.Tx, history *model.OrderStatusHistory) error
	List(ctx context.Context, filter *model.OrderFilter) ([]model.OrderEntity, int64, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	orderColumns = `id, order_number, status, payment_method, payment_status, courier_partner_id, courier_type, awb_number, assigned_to, dispatch_date, total_amount, customer_name, customer_phone, shipping_address, created_at, updated_at`

	insertOrderQuery = "INSERT INTO `order` (order_number, status, payment_method, payment_status, total_amount, customer_name, customer_phone, shipping_address, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())"

	insertItemQuery = `INSERT INTO order_item (order_id, sku, quantity, price) VALUES (?, ?, ?, ?)`

	insertHistoryQuery = `INSERT INTO order_status_history (order_id, status, comment, changed_by, created_at) VALUES (?, ?, ?, ?, NOW())`

	// MySQL counter-table idiom: LAST_INSERT_ID(expr) makes the bumped
	// per-year sequence readable on this connection.
	nextSeqQuery = `INSERT INTO order_sequence (year, seq) VALUES (?, 1) ON DUPLICATE KEY UPDATE seq = LAST_INSERT_ID(seq + 1)`
)

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, o *model.OrderEntity) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertOrderQuery,
		o.OrderNumber, o.Status, o.PaymentMethod, o.PaymentStatus, o.TotalAmount,
		o.CustomerName, o.CustomerPhone, o.ShippingAddress)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItemRequest) error {
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, insertItemQuery, orderID, it.SKU, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) NextOrderSeqTx(ctx context.Context, tx *sqlx.Tx, year int) (int64, error) {
	res, err := tx.ExecContext(ctx, nextSeqQuery, year)
	if err != nil {
		return 0, err
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if seq == 0 {
		// first row of the year: the INSERT path does not go through
		// LAST_INSERT_ID, so the sequence starts at 1
		seq = 1
	}
	return seq, nil
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.OrderEntity, error) {
	var o model.OrderEntity
	if err := r.conn.QueryRowxContext(ctx, "SELECT "+orderColumns+" FROM `order` WHERE id = ?", id).StructScan(&o); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *SQL) GetByNumber(ctx context.Context, orderNumber string) (*model.OrderEntity, error) {
	var o model.OrderEntity
	if err := r.conn.QueryRowxContext(ctx, "SELECT "+orderColumns+" FROM `order` WHERE order_number = ?", orderNumber).StructScan(&o); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *SQL) LockByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.OrderEntity, error) {
	var o model.OrderEntity
	if err := tx.QueryRowxContext(ctx, "SELECT "+orderColumns+" FROM `order` WHERE id = ? FOR UPDATE", id).StructScan(&o); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *SQL) GetItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	return scanItems(r.conn.QueryxContext(ctx, "SELECT id, order_id, sku, quantity, price FROM order_item WHERE order_id = ?", orderID))
}

func (r *SQL) GetItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItem, error) {
	return scanItems(tx.QueryxContext(ctx, "SELECT id, order_id, sku, quantity, price FROM order_item WHERE order_id = ?", orderID))
}

func scanItems(rows *sqlx.Rows, err error) ([]model.OrderItem, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderItem, 0)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE `order` SET status = ?, updated_at = NOW() WHERE id = ?", status, orderID)
	return err
}

func (r *SQL) UpdateCourierTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, req *model.DispatchRequest, dispatchDate time.Time) error {
	var awb *string
	if req.AWBNumber != "" {
		awb = &req.AWBNumber
	}
	var assigned *uint64
	if req.AssignedTo != 0 {
		assigned = &req.AssignedTo
	}
	_, err := tx.ExecContext(ctx,
		"UPDATE `order` SET courier_partner_id = ?, courier_type = ?, awb_number = ?, assigned_to = ?, dispatch_date = ?, updated_at = NOW() WHERE id = ?",
		req.CourierPartnerID, req.CourierType, awb, assigned, dispatchDate, orderID)
	return err
}

func (r *SQL) UpdateAWBTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, awbNumber string) error {
	_, err := tx.ExecContext(ctx, "UPDATE `order` SET awb_number = ?, updated_at = NOW() WHERE id = ?", awbNumber, orderID)
	return err
}

func (r *SQL) UpdatePaymentStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.PaymentStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE `order` SET payment_status = ?, updated_at = NOW() WHERE id = ?", status, orderID)
	return err
}

func (r *SQL) InsertStatusHistoryTx(ctx context.Context, tx *sqlx.Tx, h *model.OrderStatusHistory) error {
	_, err := tx.ExecContext(ctx, insertHistoryQuery, h.OrderID, h.Status, h.Comment, h.ChangedBy)
	return err
}

func (r *SQL) List(ctx context.Context, filter *model.OrderFilter) ([]model.OrderEntity, int64, error) {
	query := "SELECT " + orderColumns + " FROM `order`"
	countQuery := "SELECT COUNT(*) FROM `order`"
	args := make([]any, 0, 3)
	countArgs := make([]any, 0, 1)

	if filter.Status != "" {
		query += " WHERE status = ?"
		countQuery += " WHERE status = ?"
		args = append(args, filter.Status)
		countArgs = append(countArgs, filter.Status)
	}

	offset := (filter.Page - 1) * filter.PerPage
	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PerPage, offset)

	rows, err := r.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.OrderEntity, 0)
	for rows.Next() {
		var o model.OrderEntity
		if err := rows.StructScan(&o); err != nil {
			return nil, 0, err
		}
		items = append(items, o)
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

package variant

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/warehouse-ops/model"
)

type SQL struct {
	conn *sqlx.DB
}

type VariantRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.ProductVariant, error)
	LockByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductVariant, error)
	LockBySKUTx(ctx context.Context, tx *sqlx.Tx, sku string) (*model.ProductVariant, error)
	ApplyStockDeltaTx(ctx context.Context, tx *sqlx.Tx, id uint64, delta int64) error
	SetStockQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, quantity int64) error
	UpdateCostPriceTx(ctx context.Context, tx *sqlx.Tx, id uint64, costPrice float64) error
	InsertMovementTx(ctx context.Context, tx *sqlx.Tx, movement *model.StockMovement) (uint64, error)
	ListMovements(ctx context.Context, filter *model.MovementFilter) ([]model.StockMovement, int64, error)
}

func NewVariantRepository(conn *sqlx.DB) VariantRepository {
	return &SQL{conn: conn}
}

const (
	getVariantBase = `SELECT id, product_id, sku, color, size, stock_quantity, cost_price, selling_price, low_stock_threshold, created_at FROM product_variant`

	insertMovementQuery = `INSERT INTO stock_movement
(product_variant_id, type, quantity, previous_quantity, new_quantity, supplier_id, invoice_number, invoice_date, cost_price, reason, order_id, created_by, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	listMovementsBase = `SELECT id, product_variant_id, type, quantity, previous_quantity, new_quantity, supplier_id, invoice_number, invoice_date, cost_price, reason, order_id, created_by, created_at FROM stock_movement`
)

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductVariant, error) {
	var v model.ProductVariant
	if err := r.conn.QueryRowxContext(ctx, getVariantBase+" WHERE id = ?", id).StructScan(&v); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// LockByIDTx reads a variant row under FOR UPDATE so concurrent stock
// mutations serialize instead of losing updates.
func (r *SQL) LockByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductVariant, error) {
	var v model.ProductVariant
	if err := tx.QueryRowxContext(ctx, getVariantBase+" WHERE id = ? FOR UPDATE", id).StructScan(&v); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *SQL) LockBySKUTx(ctx context.Context, tx *sqlx.Tx, sku string) (*model.ProductVariant, error) {
	var v model.ProductVariant
	if err := tx.QueryRowxContext(ctx, getVariantBase+" WHERE sku = ? FOR UPDATE", sku).StructScan(&v); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *SQL) ApplyStockDeltaTx(ctx context.Context, tx *sqlx.Tx, id uint64, delta int64) error {
	_, err := tx.ExecContext(ctx, "UPDATE product_variant SET stock_quantity = stock_quantity + ? WHERE id = ?", delta, id)
	return err
}

func (r *SQL) SetStockQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, quantity int64) error {
	_, err := tx.ExecContext(ctx, "UPDATE product_variant SET stock_quantity = ? WHERE id = ?", quantity, id)
	return err
}

func (r *SQL) UpdateCostPriceTx(ctx context.Context, tx *sqlx.Tx, id uint64, costPrice float64) error {
	_, err := tx.ExecContext(ctx, "UPDATE product_variant SET cost_price = ? WHERE id = ?", costPrice, id)
	return err
}

func (r *SQL) InsertMovementTx(ctx context.Context, tx *sqlx.Tx, m *model.StockMovement) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertMovementQuery,
		m.ProductVariantID, m.Type, m.Quantity, m.PreviousQuantity, m.NewQuantity,
		m.SupplierID, m.InvoiceNumber, m.InvoiceDate, m.CostPrice, m.Reason, m.OrderID, m.CreatedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) ListMovements(ctx context.Context, filter *model.MovementFilter) ([]model.StockMovement, int64, error) {
	query := listMovementsBase
	countQuery := "SELECT COUNT(*) FROM stock_movement"
	args := make([]any, 0, 3)
	countArgs := make([]any, 0, 1)

	if filter.ProductVariantID != 0 {
		query += " WHERE product_variant_id = ?"
		countQuery += " WHERE product_variant_id = ?"
		args = append(args, filter.ProductVariantID)
		countArgs = append(countArgs, filter.ProductVariantID)
	}

	offset := (filter.Page - 1) * filter.PerPage
	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PerPage, offset)

	rows, err := r.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.StockMovement, 0)
	for rows.Next() {
		var m model.StockMovement
		if err := rows.StructScan(&m); err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

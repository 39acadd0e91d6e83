package model

import (
	"time"

	"github.com/muhammadheryan/warehouse-ops/constant"
)

type ProductVariant struct {
	ID                uint64    `db:"id" json:"id"`
	ProductID         uint64    `db:"product_id" json:"product_id"`
	SKU               string    `db:"sku" json:"sku"`
	Color             string    `db:"color" json:"color"`
	Size              string    `db:"size" json:"size"`
	StockQuantity     int64     `db:"stock_quantity" json:"stock_quantity"`
	CostPrice         float64   `db:"cost_price" json:"cost_price"`
	SellingPrice      float64   `db:"selling_price" json:"selling_price"`
	LowStockThreshold int64     `db:"low_stock_threshold" json:"low_stock_threshold"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// StockMovement is an immutable ledger row; new_quantity is always derived
// from previous_quantity and the movement, never supplied by callers.
type StockMovement struct {
	ID               uint64                `db:"id" json:"id"`
	ProductVariantID uint64                `db:"product_variant_id" json:"product_variant_id"`
	Type             constant.MovementType `db:"type" json:"type"`
	Quantity         int64                 `db:"quantity" json:"quantity"`
	PreviousQuantity int64                 `db:"previous_quantity" json:"previous_quantity"`
	NewQuantity      int64                 `db:"new_quantity" json:"new_quantity"`
	SupplierID       *uint64               `db:"supplier_id" json:"supplier_id,omitempty"`
	InvoiceNumber    *string               `db:"invoice_number" json:"invoice_number,omitempty"`
	InvoiceDate      *time.Time            `db:"invoice_date" json:"invoice_date,omitempty"`
	CostPrice        *float64              `db:"cost_price" json:"cost_price,omitempty"`
	Reason           string                `db:"reason" json:"reason"`
	OrderID          *uint64               `db:"order_id" json:"order_id,omitempty"`
	CreatedBy        uint64                `db:"created_by" json:"created_by"`
	CreatedAt        time.Time             `db:"created_at" json:"created_at"`
}

type StockMovementRequest struct {
	ProductVariantID uint64                `json:"product_variant_id" validate:"required"`
	Type             constant.MovementType `json:"type" validate:"required,oneof=inward outward adjustment"`
	Quantity         int64                 `json:"quantity" validate:"required,gt=0"`
	SupplierID       uint64                `json:"supplier_id"`
	InvoiceNumber    string                `json:"invoice_number"`
	InvoiceDate      *time.Time            `json:"invoice_date"`
	CostPrice        float64               `json:"cost_price"`
	Reason           string                `json:"reason"`
}

type BatchReceiveLine struct {
	ProductVariantID uint64  `json:"product_variant_id" validate:"required"`
	Quantity         int64   `json:"quantity"`
	CostPrice        float64 `json:"cost_price"`
}

type BatchReceiveRequest struct {
	SupplierID    uint64             `json:"supplier_id" validate:"required"`
	InvoiceNumber string             `json:"invoice_number"`
	InvoiceDate   *time.Time         `json:"invoice_date"`
	Lines         []BatchReceiveLine `json:"lines" validate:"required,min=1,dive"`
}

type BatchReceiveSummary struct {
	TotalMovements int             `json:"total_movements"`
	TotalUnits     int64           `json:"total_units"`
	TotalValue     float64         `json:"total_value"`
	Movements      []StockMovement `json:"movements"`
}

type MovementFilter struct {
	ProductVariantID uint64
	Page             int
	PerPage          int
}

type MovementListResponse struct {
	Items      []StockMovement `json:"items"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
}

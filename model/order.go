package model

import (
	"time"

	"github.com/muhammadheryan/warehouse-ops/constant"
)

type OrderEntity struct {
	ID               uint64                 `db:"id" json:"id"`
	OrderNumber      string                 `db:"order_number" json:"order_number"`
	Status           constant.OrderStatus   `db:"status" json:"status"`
	PaymentMethod    constant.PaymentMethod `db:"payment_method" json:"payment_method"`
	PaymentStatus    constant.PaymentStatus `db:"payment_status" json:"payment_status"`
	CourierPartnerID *uint64                `db:"courier_partner_id" json:"courier_partner_id,omitempty"`
	CourierType      *constant.CourierType  `db:"courier_type" json:"courier_type,omitempty"`
	AWBNumber        *string                `db:"awb_number" json:"awb_number,omitempty"`
	AssignedTo       *uint64                `db:"assigned_to" json:"assigned_to,omitempty"`
	DispatchDate     *time.Time             `db:"dispatch_date" json:"dispatch_date,omitempty"`
	TotalAmount      float64                `db:"total_amount" json:"total_amount"`
	CustomerName     string                 `db:"customer_name" json:"customer_name"`
	CustomerPhone    string                 `db:"customer_phone" json:"customer_phone"`
	ShippingAddress  string                 `db:"shipping_address" json:"shipping_address"`
	CreatedAt        time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt        *time.Time             `db:"updated_at" json:"updated_at,omitempty"`
}

type OrderItem struct {
	ID       uint64  `db:"id" json:"id"`
	OrderID  uint64  `db:"order_id" json:"order_id"`
	SKU      string  `db:"sku" json:"sku"`
	Quantity int64   `db:"quantity" json:"quantity"`
	Price    float64 `db:"price" json:"price"`
}

type OrderStatusHistory struct {
	ID        uint64               `db:"id" json:"id"`
	OrderID   uint64               `db:"order_id" json:"order_id"`
	Status    constant.OrderStatus `db:"status" json:"status"`
	Comment   string               `db:"comment" json:"comment"`
	ChangedBy uint64               `db:"changed_by" json:"changed_by"`
	CreatedAt time.Time            `db:"created_at" json:"created_at"`
}

type OrderResponse struct {
	Order *OrderEntity `json:"order"`
	Items []OrderItem  `json:"items,omitempty"`
}

type OrderItemRequest struct {
	SKU      string  `json:"sku" validate:"required"`
	Quantity int64   `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

type CreateOrderRequest struct {
	PaymentMethod   constant.PaymentMethod `json:"payment_method" validate:"required,oneof=cod prepaid"`
	CustomerName    string                 `json:"customer_name" validate:"required"`
	CustomerPhone   string                 `json:"customer_phone" validate:"required"`
	ShippingAddress string                 `json:"shipping_address" validate:"required"`
	Items           []OrderItemRequest     `json:"items" validate:"required,min=1,dive"`
}

type StatusUpdateRequest struct {
	Status  constant.OrderStatus `json:"status" validate:"required"`
	Comment string               `json:"comment"`
}

type DispatchRequest struct {
	CourierPartnerID uint64               `json:"courier_partner_id" validate:"required"`
	CourierType      constant.CourierType `json:"courier_type" validate:"required,oneof=third_party in_house"`
	AWBNumber        string               `json:"awb_number"`
	AssignedTo       uint64               `json:"assigned_to"`
}

type BulkStatusUpdate struct {
	OrderNumber string               `json:"order_number" validate:"required"`
	AWBNumber   string               `json:"awb_number"`
	Status      constant.OrderStatus `json:"status" validate:"required"`
	Comment     string               `json:"comment"`
}

type BulkStatusRequest struct {
	Updates []BulkStatusUpdate `json:"updates" validate:"required,min=1,dive"`
}

type BulkStatusError struct {
	OrderNumber string `json:"order_number"`
	Message     string `json:"message"`
}

type BulkStatusResult struct {
	Successful    int               `json:"successful"`
	Failed        int               `json:"failed"`
	Errors        []BulkStatusError `json:"errors"`
	UpdatedOrders []OrderEntity     `json:"updated_orders"`
}

type OrderFilter struct {
	Status  constant.OrderStatus
	Page    int
	PerPage int
}

type OrderListResponse struct {
	Items      []OrderEntity `json:"items"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
}

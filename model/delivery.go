package model

import (
	"time"

	"github.com/muhammadheryan/warehouse-ops/constant"
)

type InternalDelivery struct {
	ID                 uint64                  `db:"id" json:"id"`
	OrderID            uint64                  `db:"order_id" json:"order_id"`
	AssignedTo         uint64                  `db:"assigned_to" json:"assigned_to"`
	Status             constant.DeliveryStatus `db:"status" json:"status"`
	AmountCollected    *float64                `db:"amount_collected" json:"amount_collected,omitempty"`
	PaymentMode        *string                 `db:"payment_mode" json:"payment_mode,omitempty"`
	PaymentCollectedAt *time.Time              `db:"payment_collected_at" json:"payment_collected_at,omitempty"`
	CreatedAt          time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt          *time.Time              `db:"updated_at" json:"updated_at,omitempty"`
}

type DeliveryEvent struct {
	ID         uint64                  `db:"id" json:"id"`
	DeliveryID uint64                  `db:"delivery_id" json:"delivery_id"`
	Status     constant.DeliveryStatus `db:"status" json:"status"`
	Notes      string                  `db:"notes" json:"notes"`
	CreatedBy  uint64                  `db:"created_by" json:"created_by"`
	CreatedAt  time.Time               `db:"created_at" json:"created_at"`
}

type CollectPaymentRequest struct {
	AmountCollected float64 `json:"amount_collected" validate:"required,gt=0"`
	PaymentMode     string  `json:"payment_mode" validate:"required"`
}

type DeliveryStatusRequest struct {
	Status constant.DeliveryStatus `json:"status" validate:"required"`
	Notes  string                  `json:"notes"`
}

type DeliveryResponse struct {
	Delivery *InternalDelivery `json:"delivery"`
	Events   []DeliveryEvent   `json:"events,omitempty"`
}

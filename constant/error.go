package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrInvalidRequest
	ErrUnauthorize
	ErrForbidden
	ErrInvalidPassword
	ErrOrderNotFound
	ErrVariantNotFound
	ErrDeliveryNotFound
	ErrInvalidTransition
	ErrOrderNotDelivered
	ErrOrderHasNoItems
	ErrMissingVariant
	ErrInsufficientStock
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:           "success",
	ErrInternal:          "error internal",
	ErrInvalidRequest:    "invalid request",
	ErrUnauthorize:       "unauthorize request",
	ErrForbidden:         "operation not permitted",
	ErrInvalidPassword:   "password invalid",
	ErrOrderNotFound:     "Order not found",
	ErrVariantNotFound:   "Product variant not found",
	ErrDeliveryNotFound:  "Delivery not found",
	ErrInvalidTransition: "invalid order status transition",
	ErrOrderNotDelivered: "replacement requires a delivered order",
	ErrOrderHasNoItems:   "order has no items",
	ErrMissingVariant:    "one or more order items reference unknown variants",
	ErrInsufficientStock: "insufficient stock",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:           http.StatusOK,
	ErrInternal:          http.StatusInternalServerError,
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrUnauthorize:       http.StatusUnauthorized,
	ErrForbidden:         http.StatusForbidden,
	ErrInvalidPassword:   http.StatusBadRequest,
	ErrOrderNotFound:     http.StatusNotFound,
	ErrVariantNotFound:   http.StatusNotFound,
	ErrDeliveryNotFound:  http.StatusNotFound,
	ErrInvalidTransition: http.StatusBadRequest,
	ErrOrderNotDelivered: http.StatusBadRequest,
	ErrOrderHasNoItems:   http.StatusBadRequest,
	ErrMissingVariant:    http.StatusBadRequest,
	ErrInsufficientStock: http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:           "0000",
	ErrInternal:          "0001",
	ErrInvalidRequest:    "0002",
	ErrUnauthorize:       "0003",
	ErrForbidden:         "0004",
	ErrInvalidPassword:   "0005",
	ErrOrderNotFound:     "0100",
	ErrVariantNotFound:   "0101",
	ErrDeliveryNotFound:  "0102",
	ErrInvalidTransition: "0200",
	ErrOrderNotDelivered: "0201",
	ErrOrderHasNoItems:   "0202",
	ErrMissingVariant:    "0203",
	ErrInsufficientStock: "0204",
}

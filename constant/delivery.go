package constant

type DeliveryStatus string

const (
	DeliveryStatusAssigned         DeliveryStatus = "assigned"
	DeliveryStatusOutForDelivery   DeliveryStatus = "out_for_delivery"
	DeliveryStatusDelivered        DeliveryStatus = "delivered"
	DeliveryStatusPaymentCollected DeliveryStatus = "payment_collected"
	DeliveryStatusRTO              DeliveryStatus = "rto"
)

func ValidDeliveryStatus(s DeliveryStatus) bool {
	switch s {
	case DeliveryStatusAssigned, DeliveryStatusOutForDelivery, DeliveryStatusDelivered,
		DeliveryStatusPaymentCollected, DeliveryStatusRTO:
		return true
	}
	return false
}

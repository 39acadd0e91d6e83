package constant

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusRTO        OrderStatus = "rto"
	OrderStatusReturned   OrderStatus = "returned"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCOD     PaymentMethod = "cod"
	PaymentMethodPrepaid PaymentMethod = "prepaid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type CourierType string

const (
	CourierTypeThirdParty CourierType = "third_party"
	CourierTypeInHouse    CourierType = "in_house"
)

// orderTransitions is the allowed status graph. delivered -> dispatched covers
// replacement shipments; rto -> dispatched covers re-attempts after a return
// to origin. refunded and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusDispatched, OrderStatusCancelled},
	OrderStatusDispatched: {OrderStatusDelivered, OrderStatusRTO, OrderStatusCancelled},
	OrderStatusDelivered:  {OrderStatusDispatched, OrderStatusReturned},
	OrderStatusRTO:        {OrderStatusDispatched, OrderStatusRefunded},
	OrderStatusReturned:   {OrderStatusRefunded},
	OrderStatusRefunded:   {},
	OrderStatusCancelled:  {},
}

func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
// Same-status updates are allowed so repeated courier callbacks stay idempotent
// at the workflow level (each still appends a history row).
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return ValidOrderStatus(to)
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

package constant

type contextKey int

const (
	UserIDKey contextKey = iota
	UserRoleKey
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleOps     Role = "ops"
	RoleCourier Role = "courier"
	RoleViewer  Role = "viewer"
)

type Capability string

const (
	CapOrdersRead       Capability = "orders.read"
	CapOrdersWrite      Capability = "orders.write"
	CapOrdersDispatch   Capability = "orders.dispatch"
	CapStockRead        Capability = "stock.read"
	CapStockWrite       Capability = "stock.write"
	CapDeliveriesUpdate Capability = "deliveries.update"
)

// roleCapabilities is consulted once by the authorization middleware; routes
// never re-check permissions themselves.
var roleCapabilities = map[Role][]Capability{
	RoleAdmin:   {CapOrdersRead, CapOrdersWrite, CapOrdersDispatch, CapStockRead, CapStockWrite, CapDeliveriesUpdate},
	RoleOps:     {CapOrdersRead, CapOrdersWrite, CapOrdersDispatch, CapStockRead, CapStockWrite},
	RoleCourier: {CapOrdersRead, CapDeliveriesUpdate},
	RoleViewer:  {CapOrdersRead, CapStockRead},
}

func RoleHasCapability(role Role, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

package constant

type MovementType string

const (
	MovementInward     MovementType = "inward"
	MovementOutward    MovementType = "outward"
	MovementAdjustment MovementType = "adjustment"
)

func ValidMovementType(t MovementType) bool {
	switch t {
	case MovementInward, MovementOutward, MovementAdjustment:
		return true
	}
	return false
}

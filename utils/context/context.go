package context

import (
	"context"

	"github.com/muhammadheryan/warehouse-ops/constant"
)

// GetUserID returns the authenticated staff id attached by the auth middleware.
// Workflow operations still take the actor as an explicit parameter; this is
// only read at the transport boundary.
func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func GetUserRole(ctx context.Context) (constant.Role, bool) {
	v := ctx.Value(constant.UserRoleKey)
	if v == nil {
		return "", false
	}
	role, ok := v.(constant.Role)
	return role, ok
}

package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/warehouse-ops/application/user"
	"github.com/muhammadheryan/warehouse-ops/constant"
	"github.com/muhammadheryan/warehouse-ops/utils/errors"
)

// routePolicy is the single source of authorization truth: route template plus
// method mapped to the capability it requires. Handlers never re-check
// permissions themselves.
var routePolicy = map[string]constant.Capability{
	http.MethodGet + " /orders":                           constant.CapOrdersRead,
	http.MethodGet + " /orders/{id}":                      constant.CapOrdersRead,
	http.MethodPost + " /orders":                          constant.CapOrdersWrite,
	http.MethodPost + " /orders/{id}/status":              constant.CapOrdersWrite,
	http.MethodPost + " /orders/bulk-status":              constant.CapOrdersWrite,
	http.MethodPost + " /orders/{id}/dispatch":            constant.CapOrdersDispatch,
	http.MethodPost + " /orders/{id}/replacement":         constant.CapOrdersDispatch,
	http.MethodGet + " /stock-movements":                  constant.CapStockRead,
	http.MethodPost + " /stock-movements":                 constant.CapStockWrite,
	http.MethodPost + " /stock-movements/batch-receive":   constant.CapStockWrite,
	http.MethodGet + " /deliveries/{id}":                  constant.CapOrdersRead,
	http.MethodPost + " /deliveries/{id}/collect-payment": constant.CapDeliveriesUpdate,
	http.MethodPost + " /deliveries/{id}/status":          constant.CapDeliveriesUpdate,
}

// AuthMiddleware validates the bearer token via UserApp, attaches the staff id
// and role to the context, then enforces the declarative route policy.
func AuthMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			staff, err := userApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			if cap, ok := policyFor(r); ok {
				if !constant.RoleHasCapability(staff.Role, cap) {
					writeError(w, errors.SetCustomError(constant.ErrForbidden))
					return
				}
			}

			ctx := context.WithValue(r.Context(), constant.UserIDKey, staff.ID)
			ctx = context.WithValue(ctx, constant.UserRoleKey, staff.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func policyFor(r *http.Request) (constant.Capability, bool) {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "", false
	}
	template, err := route.GetPathTemplate()
	if err != nil {
		return "", false
	}
	cap, ok := routePolicy[r.Method+" "+template]
	return cap, ok
}

// isPublicPath defines which endpoints are public (no auth required).
// /internal/ endpoints carry their own API-key middleware.
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	return path == "/login"
}

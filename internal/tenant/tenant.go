// Package tenant carries the tenant a request acts for. Authentication is
// handled in front of this service; it only forwards the tenant id.
package tenant

import (
	"context"
	"net/http"
	"strconv"
)

// Header names the request header holding the tenant id.
const Header = "X-Tenant-ID"

type ctxKey string

const tenantIDCtxKey = ctxKey("tenantID")

// WithID stores the tenant id in context.
func WithID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, tenantIDCtxKey, id)
}

// FromContext extracts the tenant id.
func FromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(tenantIDCtxKey).(uint)
	return id, ok && id != 0
}

// Middleware attaches the tenant id of the request header to the context,
// or fallback when the header is missing or malformed.
func Middleware(fallback uint) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := fallback
			if v := r.Header.Get(Header); v != "" {
				if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
					id = uint(n)
				}
			}
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

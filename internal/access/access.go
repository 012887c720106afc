// Package access carries the caller's admin claim on a context. The claim is
// set by the HTTP layer after verifying the session token; core services only
// read it.
package access

import "context"

type adminKey struct{}

// WithAdmin returns a copy of ctx carrying the admin claim.
func WithAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, adminKey{}, isAdmin)
}

// IsAdmin is false for contexts that never passed through WithAdmin.
func IsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(adminKey{}).(bool)
	return v
}

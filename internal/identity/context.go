package identity

import "context"

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity stores the resolved caller in the request context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext retrieves the caller set by the auth middleware; the second
// return is false for anonymous requests.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	if !ok || id == nil {
		return nil, false
	}
	return id, true
}

package auth

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

type ownerKey struct{}

// WithOwner returns a context carrying the authenticated owner ID.
func WithOwner(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerFromContext returns the authenticated owner ID placed in the
// context by the session middleware.
func OwnerFromContext(ctx context.Context) (uuid.UUID, bool) {
	ownerID, ok := ctx.Value(ownerKey{}).(uuid.UUID)
	return ownerID, ok
}

package user

import (
	"context"

	"github.com/amirasaad/wallet/pkg/domain/user"
)

// Repository defines the Identity Store: identity records keyed by username.
type Repository interface {
	// Get retrieves a user by username.
	Get(ctx context.Context, username string) (*user.User, error)

	// Create inserts a new identity; it fails with ErrUserAlreadyExists when
	// the username is taken.
	Create(ctx context.Context, u *user.User) error

	// Update replaces an existing identity. A wallet reference that is
	// already set cannot be changed.
	Update(ctx context.Context, u *user.User) error

	// Delete removes an identity and reports whether one was removed.
	Delete(ctx context.Context, username string) bool

	// List retrieves every identity, in no particular order.
	List(ctx context.Context) []*user.User
}

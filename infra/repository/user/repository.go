package user

import (
	"context"

	"github.com/amirasaad/wallet/pkg/domain/user"
	repouser "github.com/amirasaad/wallet/pkg/repository/user"
	"github.com/amirasaad/wallet/pkg/store"
)

type repository struct {
	users *store.Collection[user.User]
}

// New returns an Identity Store backed by the users namespace of s.
func New(s store.Store) repouser.Repository {
	return &repository{users: store.NewCollection[user.User](s, store.Users)}
}

func (r *repository) Get(ctx context.Context, username string) (*user.User, error) {
	u, ok := r.users.Get(ctx, username)
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *repository) Create(ctx context.Context, u *user.User) error {
	if err := user.ValidateUsername(u.Username); err != nil {
		return err
	}
	if _, ok := r.users.Get(ctx, u.Username); ok {
		return user.ErrUserAlreadyExists
	}
	return r.users.Put(ctx, u.Username, u)
}

func (r *repository) Update(ctx context.Context, u *user.User) error {
	current, ok := r.users.Get(ctx, u.Username)
	if !ok {
		return user.ErrUserNotFound
	}
	if err := current.CanReplace(u); err != nil {
		return err
	}
	return r.users.Put(ctx, u.Username, u)
}

func (r *repository) Delete(ctx context.Context, username string) bool {
	return r.users.Delete(ctx, username)
}

func (r *repository) List(ctx context.Context) []*user.User {
	return r.users.List(ctx)
}

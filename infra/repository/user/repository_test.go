package user_test

import (
	"context"
	"testing"

	repouser "github.com/amirasaad/wallet/infra/repository/user"
	"github.com/amirasaad/wallet/pkg/domain"
	"github.com/amirasaad/wallet/pkg/domain/user"
	"github.com/amirasaad/wallet/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, name string) *user.User {
	t.Helper()
	u, err := user.New(name, name+"@example.com", "digest", false)
	require.NoError(t, err)
	return u
}

func TestRepository_CreateGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repouser.New(store.NewMemoryStore())

	require.NoError(t, repo.Create(ctx, newUser(t, "alice")))
	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.False(t, got.HasWallet())

	_, err = repo.Get(ctx, "bob")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_CreateDuplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repouser.New(store.NewMemoryStore())
	require.NoError(t, repo.Create(ctx, newUser(t, "alice")))

	err := repo.Create(ctx, newUser(t, "alice"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRepository_UpdateWalletImmutable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repouser.New(store.NewMemoryStore())
	u := newUser(t, "alice")
	require.NoError(t, repo.Create(ctx, u))

	u.WalletID = "w-1"
	require.NoError(t, repo.Update(ctx, u))

	u.Email = "new@example.com"
	require.NoError(t, repo.Update(ctx, u), "other fields stay editable")

	u.WalletID = "w-2"
	assert.ErrorIs(t, repo.Update(ctx, u), user.ErrWalletImmutable)

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "w-1", got.WalletID)
	assert.Equal(t, "new@example.com", got.Email)
}

func TestRepository_UpdateMissing(t *testing.T) {
	t.Parallel()
	repo := repouser.New(store.NewMemoryStore())
	assert.ErrorIs(t, repo.Update(context.Background(), newUser(t, "ghost")), user.ErrUserNotFound)
}

func TestRepository_DeleteList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repouser.New(store.NewMemoryStore())
	require.NoError(t, repo.Create(ctx, newUser(t, "alice")))
	require.NoError(t, repo.Create(ctx, newUser(t, "bobby")))
	assert.Len(t, repo.List(ctx), 2)

	assert.True(t, repo.Delete(ctx, "alice"))
	assert.False(t, repo.Delete(ctx, "alice"))
	assert.Len(t, repo.List(ctx), 1)
}

func TestRepository_PersistenceFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := store.NewMemoryStore()
	repo := repouser.New(mem)
	mem.FailPuts(store.Users)

	err := repo.Create(ctx, newUser(t, "alice"))
	assert.ErrorIs(t, err, domain.ErrPersistence)
	_, err = repo.Get(ctx, "alice")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

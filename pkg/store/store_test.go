package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amirasaad/wallet/pkg/domain"
	"github.com/amirasaad/wallet/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestValidKey(t *testing.T) {
	t.Parallel()
	assert.True(t, store.ValidKey("alice"))
	assert.True(t, store.ValidKey("a1b2c3d4"))
	assert.False(t, store.ValidKey(""))
	assert.False(t, store.ValidKey(".hidden"))
	assert.False(t, store.ValidKey("../etc/passwd"))
	assert.False(t, store.ValidKey("a/b"))
	assert.False(t, store.ValidKey(`a\b`))
}

func TestCollection_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	col := store.NewCollection[record](store.NewMemoryStore(), store.Users)

	require.NoError(t, col.Put(ctx, "k1", &record{Name: "one", Count: 1}))
	got, ok := col.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, &record{Name: "one", Count: 1}, got)

	_, ok = col.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestCollection_MalformedIsAbsent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, store.Users, "bad", []byte("{not json")))
	require.NoError(t, mem.Put(ctx, store.Users, "good", []byte(`{"name":"g"}`)))

	col := store.NewCollection[record](mem, store.Users)
	_, ok := col.Get(ctx, "bad")
	assert.False(t, ok)

	all := col.List(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "g", all[0].Name)
	assert.Zero(t, all[0].Count, "absent field takes its zero value")
}

func TestCollection_UnknownFieldsIgnored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, store.Users, "k", []byte(`{"name":"n","count":2,"added_later":true}`)))

	got, ok := store.NewCollection[record](mem, store.Users).Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, store.Sessions, "tok", []byte("{}")))

	assert.True(t, mem.Delete(ctx, store.Sessions, "tok"))
	assert.False(t, mem.Delete(ctx, store.Sessions, "tok"))
	assert.Equal(t, 0, mem.Len(store.Sessions))
}

func TestMemoryStore_PutFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, store.Wallets, "w", []byte(`{"v":1}`)))

	mem.FailPuts(store.Wallets)
	err := mem.Put(ctx, store.Wallets, "w", []byte(`{"v":2}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))

	data, ok := mem.Get(ctx, store.Wallets, "w")
	require.True(t, ok)
	assert.JSONEq(t, `{"v":1}`, string(data), "failed put leaves previous content")

	// other namespaces are unaffected
	require.NoError(t, mem.Put(ctx, store.Users, "u", []byte("{}")))

	mem.SetPutHook(nil)
	require.NoError(t, mem.Put(ctx, store.Wallets, "w", []byte(`{"v":2}`)))
}

func TestMemoryStore_InvalidKey(t *testing.T) {
	t.Parallel()
	err := store.NewMemoryStore().Put(context.Background(), store.Users, "../x", []byte("{}"))
	assert.ErrorIs(t, err, store.ErrInvalidKey)
}

func TestMemoryStore_CopiesData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := store.NewMemoryStore()
	buf := []byte(`{"a":1}`)
	require.NoError(t, mem.Put(ctx, store.Users, "k", buf))
	buf[2] = 'X'

	data, _ := mem.Get(ctx, store.Users, "k")
	assert.JSONEq(t, `{"a":1}`, string(data))
}

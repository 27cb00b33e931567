package wallet_test

import (
	"context"
	"testing"

	repowallet "github.com/amirasaad/wallet/infra/repository/wallet"
	"github.com/amirasaad/wallet/pkg/domain"
	"github.com/amirasaad/wallet/pkg/domain/wallet"
	"github.com/amirasaad/wallet/pkg/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_WalletRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repowallet.New(store.NewMemoryStore())

	w := wallet.New("w1", "alice")
	w.Record("t1", decimal.NewFromFloat(12.25))
	require.NoError(t, repo.SaveWallet(ctx, w))

	got, err := repo.GetWallet(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Owner)
	assert.True(t, got.Balance.Equal(decimal.NewFromFloat(12.25)))
	assert.Equal(t, []string{"t1"}, got.TransactionIDs)

	_, err = repo.GetWallet(ctx, "missing")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestRepository_LegacyWalletWithoutTransactions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, store.Wallets, "w1", []byte(`{"wallet_id":"w1","owner_username":"alice","balance":0.0}`)))

	got, err := repowallet.New(mem).GetWallet(ctx, "w1")
	require.NoError(t, err)
	assert.NotNil(t, got.TransactionIDs)
	assert.Empty(t, got.TransactionIDs)
}

func TestRepository_TransactionsAreNeverOverwritten(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repowallet.New(store.NewMemoryStore())

	tx := &wallet.Transaction{ID: "t1", WalletID: "w1", Amount: decimal.NewFromInt(5), Kind: wallet.Credit, Timestamp: 100, Description: "first"}
	require.NoError(t, repo.CreateTransaction(ctx, tx))

	dup := *tx
	dup.Description = "rewrite"
	assert.ErrorIs(t, repo.CreateTransaction(ctx, &dup), domain.ErrAlreadyExists)

	got, err := repo.GetTransaction(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Description)
	assert.Equal(t, wallet.Credit, got.Kind)

	_, err = repo.GetTransaction(ctx, "t2")
	assert.ErrorIs(t, err, wallet.ErrTransactionNotFound)
}

func TestRepository_DeleteAndListWallets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repowallet.New(store.NewMemoryStore())
	require.NoError(t, repo.SaveWallet(ctx, wallet.New("w1", "alice")))
	require.NoError(t, repo.SaveWallet(ctx, wallet.New("w2", "bobby")))
	assert.Len(t, repo.ListWallets(ctx), 2)

	assert.True(t, repo.DeleteWallet(ctx, "w1"))
	assert.Len(t, repo.ListWallets(ctx), 1)
}

func TestRepository_ListTransactionsInOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := store.NewMemoryStore()
	repo := repowallet.New(mem)
	for _, id := range []string{"t3", "t1", "t2"} {
		require.NoError(t, repo.CreateTransaction(ctx, &wallet.Transaction{ID: id, WalletID: "w1", Amount: decimal.NewFromInt(1), Kind: wallet.Credit}))
	}
	require.NoError(t, mem.Put(ctx, store.Transactions, "broken", []byte("{")))

	got := repo.ListTransactions(ctx, []string{"t2", "missing", "t3", "broken", "t1"})
	ids := make([]string, 0, len(got))
	for _, tx := range got {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"t2", "t3", "t1"}, ids)
}

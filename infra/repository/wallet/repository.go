package wallet

import (
	"context"

	"github.com/amirasaad/wallet/pkg/domain/wallet"
	repowallet "github.com/amirasaad/wallet/pkg/repository/wallet"
	"github.com/amirasaad/wallet/pkg/store"
)

type repository struct {
	wallets      *store.Collection[wallet.Wallet]
	transactions *store.Collection[wallet.Transaction]
}

// New returns a Ledger Store backed by the wallets and transactions
// namespaces of s.
func New(s store.Store) repowallet.Repository {
	return &repository{
		wallets:      store.NewCollection[wallet.Wallet](s, store.Wallets),
		transactions: store.NewCollection[wallet.Transaction](s, store.Transactions),
	}
}

func (r *repository) GetWallet(ctx context.Context, id string) (*wallet.Wallet, error) {
	w, ok := r.wallets.Get(ctx, id)
	if !ok {
		return nil, wallet.ErrWalletNotFound
	}
	if w.TransactionIDs == nil {
		w.TransactionIDs = []string{}
	}
	return w, nil
}

func (r *repository) SaveWallet(ctx context.Context, w *wallet.Wallet) error {
	return r.wallets.Put(ctx, w.ID, w)
}

func (r *repository) DeleteWallet(ctx context.Context, id string) bool {
	return r.wallets.Delete(ctx, id)
}

func (r *repository) ListWallets(ctx context.Context) []*wallet.Wallet {
	return r.wallets.List(ctx)
}

func (r *repository) CreateTransaction(ctx context.Context, tx *wallet.Transaction) error {
	if _, ok := r.transactions.Get(ctx, tx.ID); ok {
		return wallet.ErrTransactionExists
	}
	return r.transactions.Put(ctx, tx.ID, tx)
}

func (r *repository) GetTransaction(ctx context.Context, id string) (*wallet.Transaction, error) {
	tx, ok := r.transactions.Get(ctx, id)
	if !ok {
		return nil, wallet.ErrTransactionNotFound
	}
	return tx, nil
}

func (r *repository) ListTransactions(ctx context.Context, ids []string) []*wallet.Transaction {
	out := make([]*wallet.Transaction, 0, len(ids))
	for _, id := range ids {
		if tx, ok := r.transactions.Get(ctx, id); ok {
			out = append(out, tx)
		}
	}
	return out
}

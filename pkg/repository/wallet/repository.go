package wallet

import (
	"context"

	"github.com/amirasaad/wallet/pkg/domain/wallet"
)

// Repository defines the Ledger Store: wallets keyed by wallet id and
// immutable transactions keyed by transaction id.
type Repository interface {
	// GetWallet retrieves a wallet by id.
	GetWallet(ctx context.Context, id string) (*wallet.Wallet, error)

	// SaveWallet writes the full wallet record.
	SaveWallet(ctx context.Context, w *wallet.Wallet) error

	// DeleteWallet removes a wallet record. It exists to roll back a wallet
	// whose identity reference could not be written.
	DeleteWallet(ctx context.Context, id string) bool

	// ListWallets retrieves every wallet, in no particular order.
	ListWallets(ctx context.Context) []*wallet.Wallet

	// CreateTransaction writes a new transaction record. Existing records
	// are never overwritten.
	CreateTransaction(ctx context.Context, tx *wallet.Transaction) error

	// GetTransaction retrieves a transaction by id.
	GetTransaction(ctx context.Context, id string) (*wallet.Transaction, error)

	// ListTransactions resolves ids in order, skipping ids with no
	// readable record.
	ListTransactions(ctx context.Context, ids []string) []*wallet.Transaction
}

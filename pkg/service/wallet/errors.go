package wallet

import (
	"errors"
	"fmt"

	"github.com/amirasaad/wallet/pkg/domain"
)

var (
	// ErrRollbackFailed is returned when a new wallet could not be deleted
	// after its owner's identity failed to record it.
	ErrRollbackFailed = fmt.Errorf("wallet: rollback failed: %w", domain.ErrPersistence)
	// ErrOrphanedTransaction is returned when a transaction record was
	// written but the wallet that should reference it was not.
	ErrOrphanedTransaction = fmt.Errorf("wallet: orphaned transaction: %w", domain.ErrPersistence)
	// ErrTransferIncomplete is returned when the debit leg of a transfer was
	// applied and the credit leg was not.
	ErrTransferIncomplete = fmt.Errorf("wallet: transfer incomplete: %w", domain.ErrPersistence)
)

// OrphanedTransactionError carries the id of the unreferenced transaction
// record. The wallet balance is unchanged.
type OrphanedTransactionError struct {
	TransactionID string
	WalletID      string
	Err           error
}

func (e *OrphanedTransactionError) Error() string {
	return fmt.Sprintf("%v: transaction %s on wallet %s: %v", ErrOrphanedTransaction, e.TransactionID, e.WalletID, e.Err)
}

func (e *OrphanedTransactionError) Unwrap() []error {
	return []error{ErrOrphanedTransaction, e.Err}
}

// TransferIncompleteError carries the id of the applied debit so callers
// can compensate for it.
type TransferIncompleteError struct {
	DebitID string
	From    string
	To      string
	Err     error
}

func (e *TransferIncompleteError) Error() string {
	return fmt.Sprintf("%v: debit %s from %s not credited to %s: %v", ErrTransferIncomplete, e.DebitID, e.From, e.To, e.Err)
}

func (e *TransferIncompleteError) Unwrap() []error {
	return []error{ErrTransferIncomplete, e.Err}
}

func rollbackFailed(walletID string, cause error) error {
	return fmt.Errorf("%w: wallet %s left without owner reference: %w", ErrRollbackFailed, walletID, cause)
}

// IsPartial reports whether err describes a multi-record write that was
// only partly applied.
func IsPartial(err error) bool {
	return errors.Is(err, ErrRollbackFailed) ||
		errors.Is(err, ErrOrphanedTransaction) ||
		errors.Is(err, ErrTransferIncomplete)
}

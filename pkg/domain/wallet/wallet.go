package wallet

import (
	"fmt"

	"github.com/amirasaad/wallet/pkg/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrWalletNotFound is returned when a wallet id does not resolve.
	ErrWalletNotFound = fmt.Errorf("wallet: %w", domain.ErrNotFound)
	// ErrWalletAlreadyExists is returned when an identity already references a wallet.
	ErrWalletAlreadyExists = fmt.Errorf("wallet: %w", domain.ErrAlreadyExists)
	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = fmt.Errorf("wallet: %w", domain.ErrInsufficientFunds)
	// ErrInvalidAmount is returned when an amount is zero or negative.
	ErrInvalidAmount = fmt.Errorf("wallet: %w", domain.ErrInvalidAmount)
	// ErrSameWallet is returned when a transfer names the same wallet twice.
	ErrSameWallet = fmt.Errorf("wallet: cannot transfer to same wallet: %w", domain.ErrValidation)
)

// Wallet is a balance owned by one identity plus the ordered ids of the
// transactions applied to it.
//
// Invariants:
//   - Owner is set at creation and never changes.
//   - Balance is never negative.
//   - TransactionIDs only grows; its order is the order transactions were applied.
type Wallet struct {
	ID             string          `json:"wallet_id"`
	Owner          string          `json:"owner_username"`
	Balance        decimal.Decimal `json:"balance"`
	TransactionIDs []string        `json:"transaction_ids"`
}

// New returns an empty wallet with a zero balance.
func New(id, owner string) *Wallet {
	return &Wallet{
		ID:             id,
		Owner:          owner,
		Balance:        decimal.Zero,
		TransactionIDs: []string{},
	}
}

// ValidateAmount checks that amount is a positive magnitude.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// NextBalance computes the balance after applying amount as kind, without
// mutating the wallet. Debits larger than the balance are rejected.
func (w *Wallet) NextBalance(kind Kind, amount decimal.Decimal) (decimal.Decimal, error) {
	if !kind.Valid() {
		return decimal.Decimal{}, ErrInvalidKind
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Decimal{}, err
	}
	switch kind {
	case Debit:
		if w.Balance.LessThan(amount) {
			return decimal.Decimal{}, ErrInsufficientFunds
		}
		return w.Balance.Sub(amount), nil
	default:
		return w.Balance.Add(amount), nil
	}
}

// Record sets the new balance and appends txID to the history.
func (w *Wallet) Record(txID string, balance decimal.Decimal) {
	w.Balance = balance
	w.TransactionIDs = append(w.TransactionIDs, txID)
}

// OwnedBy reports whether username owns the wallet.
func (w *Wallet) OwnedBy(username string) bool {
	return w.Owner == username
}

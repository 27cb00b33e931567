package wallet

import (
	"fmt"

	"github.com/amirasaad/wallet/pkg/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidKind is returned for transaction kinds other than credit and debit.
	ErrInvalidKind = fmt.Errorf("wallet: %w", domain.ErrInvalidKind)
	// ErrTransactionNotFound is returned when a transaction id does not resolve.
	ErrTransactionNotFound = fmt.Errorf("transaction: %w", domain.ErrNotFound)
	// ErrTransactionExists is returned when a transaction id is already taken.
	ErrTransactionExists = fmt.Errorf("transaction: %w", domain.ErrAlreadyExists)
)

// Kind tags the sign of a transaction amount.
type Kind string

// Transaction kinds.
const (
	Credit Kind = "credit"
	Debit  Kind = "debit"
)

// ParseKind accepts exactly "credit" or "debit".
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// Valid reports whether k is credit or debit.
func (k Kind) Valid() bool {
	return k == Credit || k == Debit
}

// Transaction is an immutable ledger entry. Amount is always a positive
// magnitude; Kind carries the sign.
type Transaction struct {
	ID          string          `json:"transaction_id"`
	WalletID    string          `json:"wallet_id"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        Kind            `json:"type"`
	Timestamp   int64           `json:"timestamp"`
	Description string          `json:"description"`
}

// Signed returns the amount with the sign implied by the kind.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Kind == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

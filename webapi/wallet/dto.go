package wallet

import (
	"github.com/amirasaad/wallet/pkg/domain/wallet"
	walletsvc "github.com/amirasaad/wallet/pkg/service/wallet"
	"github.com/shopspring/decimal"
)

// TransactionInput represents the request body for a credit or debit.
// Amount accepts a JSON number or a decimal string.
type TransactionInput struct {
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"10.50"`
	Type        string          `json:"type" validate:"required" example:"credit"`
	Description string          `json:"description" validate:"max=255"`
}

// TransferInput represents the request body for a transfer out of a wallet.
type TransferInput struct {
	ToWalletID  string          `json:"to_wallet_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"10.50"`
	Description string          `json:"description" validate:"max=255"`
}

// WalletCreated is returned when a wallet is created.
type WalletCreated struct {
	WalletID string `json:"wallet_id"`
}

// TransactionResult is returned after a transaction is applied.
type TransactionResult struct {
	Transaction *wallet.Transaction `json:"transaction"`
	Balance     decimal.Decimal     `json:"balance" swaggertype:"string"`
}

// TransferResponse is returned after a completed transfer.
type TransferResponse struct {
	DebitID     string          `json:"debit_transaction_id"`
	CreditID    string          `json:"credit_transaction_id"`
	FromBalance decimal.Decimal `json:"from_balance" swaggertype:"string"`
	ToBalance   decimal.Decimal `json:"to_balance" swaggertype:"string"`
}

// ToTransferResponse maps a transfer result.
func ToTransferResponse(r walletsvc.TransferResult) TransferResponse {
	resp := TransferResponse{
		DebitID:     r.DebitID(),
		FromBalance: r.FromBalance,
		ToBalance:   r.ToBalance,
	}
	if r.Credit != nil {
		resp.CreditID = r.Credit.ID
	}
	return resp
}

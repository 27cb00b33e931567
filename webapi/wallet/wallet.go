package wallet

import (
	"errors"

	"github.com/amirasaad/wallet/pkg/domain/wallet"
	"github.com/amirasaad/wallet/pkg/middleware"
	usersvc "github.com/amirasaad/wallet/pkg/service/user"
	walletsvc "github.com/amirasaad/wallet/pkg/service/wallet"
	"github.com/amirasaad/wallet/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the wallet and ledger endpoints. Every route requires a
// session; wallet-scoped routes also require the caller's identity to
// reference the wallet, or the caller to be an admin.
func Routes(
	app *fiber.App,
	walletSvc *walletsvc.Service,
	userSvc *usersvc.Service,
	auth middleware.TokenValidator,
) {
	g := app.Group("/wallet", middleware.Protected(auth))
	g.Post("/", CreateWallet(walletSvc))
	g.Get("/", GetOwnWallet(walletSvc))
	g.Get("/:id", GetWallet(walletSvc, userSvc))
	g.Post("/:id/transactions", ApplyTransaction(walletSvc, userSvc))
	g.Get("/:id/transactions", ListTransactions(walletSvc, userSvc))
	g.Post("/:id/transfer", Transfer(walletSvc, userSvc))
}

// authorize loads the wallet named by the :id param and checks that the
// caller may act on it. On failure the problem is already written and the
// returned wallet is nil.
func authorize(
	c *fiber.Ctx,
	walletSvc *walletsvc.Service,
	userSvc *usersvc.Service,
) (*wallet.Wallet, error) {
	username, _ := middleware.CurrentUser(c)
	w, err := walletSvc.GetWallet(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, common.ProblemDetailsJSON(c, "Wallet not found", err)
	}
	caller, err := userSvc.GetProfile(c.UserContext(), username)
	if err == nil && (caller.WalletID == w.ID || caller.IsAdmin) {
		return w, nil
	}
	return nil, common.ProblemDetailsJSON(c, "Forbidden", nil, "You are not allowed to access this wallet", fiber.StatusForbidden)
}

// CreateWallet creates the caller's wallet.
// @Summary Create wallet
// @Description Create the single wallet of the authenticated user with a zero balance
// @Tags wallets
// @Produce json
// @Success 201 {object} common.Response{data=WalletCreated}
// @Failure 401 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /wallet [post]
// @Security Bearer
func CreateWallet(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, _ := middleware.CurrentUser(c)
		id, err := walletSvc.CreateWallet(c.UserContext(), username)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create wallet", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Wallet created", WalletCreated{WalletID: id})
	}
}

// GetOwnWallet returns the caller's wallet.
// @Summary Get own wallet
// @Description Retrieve the wallet referenced by the authenticated user
// @Tags wallets
// @Produce json
// @Success 200 {object} common.Response{data=wallet.Wallet}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /wallet [get]
// @Security Bearer
func GetOwnWallet(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, _ := middleware.CurrentUser(c)
		w, err := walletSvc.GetUserWallet(c.UserContext(), username)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Wallet not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet found", w)
	}
}

// GetWallet returns a wallet by id.
// @Summary Get wallet
// @Description Retrieve a wallet by id
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID"
// @Success 200 {object} common.Response{data=wallet.Wallet}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /wallet/{id} [get]
// @Security Bearer
func GetWallet(walletSvc *walletsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, err := authorize(c, walletSvc, userSvc)
		if w == nil {
			return err
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet found", w)
	}
}

// ApplyTransaction credits or debits a wallet.
// @Summary Apply transaction
// @Description Credit or debit a wallet by a positive amount
// @Tags wallets
// @Accept json
// @Produce json
// @Param id path string true "Wallet ID"
// @Param request body TransactionInput true "Transaction"
// @Success 201 {object} common.Response{data=TransactionResult}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /wallet/{id}/transactions [post]
// @Security Bearer
func ApplyTransaction(walletSvc *walletsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, err := authorize(c, walletSvc, userSvc)
		if w == nil {
			return err
		}
		input, err := common.BindAndValidate[TransactionInput](c)
		if input == nil {
			return err
		}
		kind, err := wallet.ParseKind(input.Type)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction type", err, "Type must be credit or debit")
		}
		tx, balance, err := walletSvc.ApplyTransaction(c.UserContext(), w.ID, input.Amount, kind, input.Description)
		if err != nil {
			return problem(c, "Transaction failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction applied", TransactionResult{
			Transaction: tx,
			Balance:     balance,
		})
	}
}

// ListTransactions returns a wallet's history in application order.
// @Summary List transactions
// @Description List the transactions of a wallet in the order they were applied
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID"
// @Success 200 {object} common.Response{data=[]wallet.Transaction}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /wallet/{id}/transactions [get]
// @Security Bearer
func ListTransactions(walletSvc *walletsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, err := authorize(c, walletSvc, userSvc)
		if w == nil {
			return err
		}
		txs, err := walletSvc.ListTransactions(c.UserContext(), w.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions found", txs)
	}
}

// Transfer moves funds from the wallet in the path to another wallet.
// @Summary Transfer funds
// @Description Debit the source wallet and credit the destination wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param id path string true "Source wallet ID"
// @Param request body TransferInput true "Transfer"
// @Success 200 {object} common.Response{data=TransferResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /wallet/{id}/transfer [post]
// @Security Bearer
func Transfer(walletSvc *walletsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, err := authorize(c, walletSvc, userSvc)
		if w == nil {
			return err
		}
		input, err := common.BindAndValidate[TransferInput](c)
		if input == nil {
			return err
		}
		result, err := walletSvc.Transfer(c.UserContext(), w.ID, input.ToWalletID, input.Amount, input.Description)
		if err != nil {
			return problem(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer completed", ToTransferResponse(result))
	}
}

// problem writes err, attaching the ids of any partial write so that the
// caller can reconcile it.
func problem(c *fiber.Ctx, title string, err error) error {
	var incomplete *walletsvc.TransferIncompleteError
	if errors.As(err, &incomplete) {
		return common.ProblemDetailsJSON(c, title, err, fiber.Map{
			"debit_transaction_id": incomplete.DebitID,
			"from_wallet_id":       incomplete.From,
			"to_wallet_id":         incomplete.To,
		}, fiber.StatusInternalServerError)
	}
	var orphan *walletsvc.OrphanedTransactionError
	if errors.As(err, &orphan) {
		return common.ProblemDetailsJSON(c, title, err, fiber.Map{
			"orphaned_transaction_id": orphan.TransactionID,
			"wallet_id":               orphan.WalletID,
		}, fiber.StatusInternalServerError)
	}
	return common.ProblemDetailsJSON(c, title, err)
}

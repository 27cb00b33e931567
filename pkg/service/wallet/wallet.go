// Package wallet is the ledger engine: wallet creation, transaction
// application, history listing and two-leg transfers.
//
// Each operation touches more than one record and the store has no
// transactions, so writes are ordered to keep every wallet record
// internally consistent. When a later write fails the operation returns a
// typed error naming what was left behind.
package wallet

import (
	"context"
	"log/slog"

	"github.com/amirasaad/wallet/pkg/clock"
	"github.com/amirasaad/wallet/pkg/domain/wallet"
	"github.com/amirasaad/wallet/pkg/idgen"
	"github.com/amirasaad/wallet/pkg/metrics"
	repouser "github.com/amirasaad/wallet/pkg/repository/user"
	repowallet "github.com/amirasaad/wallet/pkg/repository/wallet"
	"github.com/shopspring/decimal"
)

// Service is the ledger engine.
type Service struct {
	users   repouser.Repository
	ledger  repowallet.Repository
	ids     idgen.Generator
	clock   clock.Clock
	locks   *keyedMutex
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the wall clock used for transaction timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithIDGenerator overrides the random wallet and transaction ids.
func WithIDGenerator(g idgen.Generator) Option {
	return func(s *Service) { s.ids = g }
}

// WithMetrics records transaction and transfer outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates a ledger engine over the identity and ledger stores.
func New(
	users repouser.Repository,
	ledger repowallet.Repository,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		users:  users,
		ledger: ledger,
		ids:    idgen.Random{},
		clock:  clock.System{},
		locks:  newKeyedMutex(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TransferResult describes both legs of a transfer.
type TransferResult struct {
	Debit       *wallet.Transaction `json:"debit"`
	Credit      *wallet.Transaction `json:"credit,omitempty"`
	FromBalance decimal.Decimal     `json:"from_balance"`
	ToBalance   decimal.Decimal     `json:"to_balance"`
}

// DebitID returns the id of the applied debit, or "" when none was applied.
func (r TransferResult) DebitID() string {
	if r.Debit == nil {
		return ""
	}
	return r.Debit.ID
}

// CreateWallet creates the single wallet of username with a zero balance
// and records its id on the identity. If the identity cannot be updated the
// new wallet is deleted again.
func (s *Service) CreateWallet(ctx context.Context, username string) (walletID string, err error) {
	log := s.logger.With("context", "CreateWallet", "username", username)
	log.Debug("CreateWallet called")
	defer s.locks.Lock("user:" + username)()

	u, err := s.users.Get(ctx, username)
	if err != nil {
		log.Error("CreateWallet failed", "error", err)
		return "", err
	}
	if u.HasWallet() {
		log.Error("CreateWallet failed", "error", wallet.ErrWalletAlreadyExists, "walletID", u.WalletID)
		return "", wallet.ErrWalletAlreadyExists
	}

	w := wallet.New(s.ids.NewID(), username)
	if err = s.ledger.SaveWallet(ctx, w); err != nil {
		log.Error("CreateWallet failed", "step", "wallet", "error", err)
		return "", err
	}
	u.WalletID = w.ID
	if err = s.users.Update(ctx, u); err != nil {
		if !s.ledger.DeleteWallet(ctx, w.ID) {
			err = rollbackFailed(w.ID, err)
			log.Error("CreateWallet rollback failed", "walletID", w.ID, "error", err)
			return "", err
		}
		log.Error("CreateWallet failed", "step", "identity", "error", err)
		return "", err
	}
	log.Info("CreateWallet successful", "walletID", w.ID)
	return w.ID, nil
}

// GetWallet retrieves a wallet by id.
func (s *Service) GetWallet(ctx context.Context, walletID string) (*wallet.Wallet, error) {
	return s.ledger.GetWallet(ctx, walletID)
}

// GetUserWallet retrieves the wallet referenced by username's identity.
func (s *Service) GetUserWallet(ctx context.Context, username string) (*wallet.Wallet, error) {
	u, err := s.users.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if !u.HasWallet() {
		return nil, wallet.ErrWalletNotFound
	}
	return s.ledger.GetWallet(ctx, u.WalletID)
}

// Live reports whether the identity named by w.Owner still references w.
// The wallet of a deleted identity stays in the ledger but is not live.
func (s *Service) Live(ctx context.Context, w *wallet.Wallet) bool {
	u, err := s.users.Get(ctx, w.Owner)
	return err == nil && u.WalletID == w.ID
}

// ApplyTransaction credits or debits walletID by amount. The transaction
// record is written before the wallet, so a failed wallet write leaves the
// balance untouched and an orphaned transaction behind.
func (s *Service) ApplyTransaction(
	ctx context.Context,
	walletID string,
	amount decimal.Decimal,
	kind wallet.Kind,
	description string,
) (tx *wallet.Transaction, balance decimal.Decimal, err error) {
	log := s.logger.With("context", "ApplyTransaction", "walletID", walletID, "kind", kind)
	log.Debug("ApplyTransaction called", "amount", amount)
	defer func() {
		s.metrics.Transaction(string(kind), metrics.Result(err))
	}()

	if !kind.Valid() {
		log.Error("ApplyTransaction failed", "error", wallet.ErrInvalidKind)
		return nil, decimal.Decimal{}, wallet.ErrInvalidKind
	}
	if err = wallet.ValidateAmount(amount); err != nil {
		log.Error("ApplyTransaction failed", "error", err)
		return nil, decimal.Decimal{}, err
	}
	defer s.locks.Lock("wallet:" + walletID)()

	w, err := s.ledger.GetWallet(ctx, walletID)
	if err != nil {
		log.Error("ApplyTransaction failed", "error", err)
		return nil, decimal.Decimal{}, err
	}
	next, err := w.NextBalance(kind, amount)
	if err != nil {
		log.Error("ApplyTransaction failed", "error", err, "balance", w.Balance)
		return nil, decimal.Decimal{}, err
	}

	tx = &wallet.Transaction{
		ID:          s.ids.NewID(),
		WalletID:    walletID,
		Amount:      amount,
		Kind:        kind,
		Timestamp:   s.clock.Now().Unix(),
		Description: description,
	}
	if err = s.ledger.CreateTransaction(ctx, tx); err != nil {
		log.Error("ApplyTransaction failed", "step", "transaction", "error", err)
		return nil, decimal.Decimal{}, err
	}
	w.Record(tx.ID, next)
	if err = s.ledger.SaveWallet(ctx, w); err != nil {
		err = &OrphanedTransactionError{TransactionID: tx.ID, WalletID: walletID, Err: err}
		log.Error("ApplyTransaction failed", "step", "wallet", "transactionID", tx.ID, "error", err)
		return nil, decimal.Decimal{}, err
	}
	log.Info("ApplyTransaction successful", "transactionID", tx.ID, "balance", next)
	return tx, next, nil
}

// ListTransactions returns the transactions of walletID in the order they
// were applied. Ids without a readable record are skipped.
func (s *Service) ListTransactions(ctx context.Context, walletID string) ([]*wallet.Transaction, error) {
	w, err := s.ledger.GetWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}
	return s.ledger.ListTransactions(ctx, w.TransactionIDs), nil
}

// Transfer debits from and credits to by amount. Both wallets are checked
// before the debit, and the destination must be live. A failed credit does not undo the debit; the returned
// TransferIncompleteError names it.
func (s *Service) Transfer(
	ctx context.Context,
	from, to string,
	amount decimal.Decimal,
	description string,
) (result TransferResult, err error) {
	log := s.logger.With("context", "Transfer", "from", from, "to", to)
	log.Debug("Transfer called", "amount", amount)

	if from == to {
		log.Error("Transfer failed", "error", wallet.ErrSameWallet)
		s.metrics.Transfer(metrics.ResultFailure)
		return result, wallet.ErrSameWallet
	}
	if err = wallet.ValidateAmount(amount); err != nil {
		log.Error("Transfer failed", "error", err)
		s.metrics.Transfer(metrics.ResultFailure)
		return result, err
	}
	source, err := s.ledger.GetWallet(ctx, from)
	if err != nil {
		log.Error("Transfer failed", "error", err)
		s.metrics.Transfer(metrics.ResultFailure)
		return result, err
	}
	dest, err := s.ledger.GetWallet(ctx, to)
	if err != nil {
		log.Error("Transfer failed", "error", err)
		s.metrics.Transfer(metrics.ResultFailure)
		return result, err
	}
	if !s.Live(ctx, dest) {
		log.Error("Transfer failed", "error", wallet.ErrWalletNotFound, "reason", "retired")
		s.metrics.Transfer(metrics.ResultFailure)
		return result, wallet.ErrWalletNotFound
	}

	debit, fromBalance, err := s.ApplyTransaction(ctx, from, amount, wallet.Debit, description)
	if err != nil {
		log.Error("Transfer failed", "leg", "debit", "error", err)
		s.metrics.Transfer(metrics.ResultFailure)
		return result, err
	}
	result.Debit = debit
	result.FromBalance = fromBalance

	credit, toBalance, err := s.ApplyTransaction(ctx, to, amount, wallet.Credit, "Received from "+source.Owner)
	if err != nil {
		err = &TransferIncompleteError{DebitID: debit.ID, From: from, To: to, Err: err}
		log.Error("Transfer incomplete", "debitID", debit.ID, "error", err)
		s.metrics.Transfer(metrics.ResultPartial)
		return result, err
	}
	result.Credit = credit
	result.ToBalance = toBalance
	s.metrics.Transfer(metrics.ResultSuccess)
	log.Info("Transfer successful", "debitID", debit.ID, "creditID", credit.ID)
	return result, nil
}

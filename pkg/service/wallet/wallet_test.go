package wallet_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	repouser "github.com/amirasaad/wallet/infra/repository/user"
	repowallet "github.com/amirasaad/wallet/infra/repository/wallet"
	"github.com/amirasaad/wallet/pkg/clock"
	"github.com/amirasaad/wallet/pkg/domain"
	"github.com/amirasaad/wallet/pkg/domain/user"
	"github.com/amirasaad/wallet/pkg/domain/wallet"
	"github.com/amirasaad/wallet/pkg/idgen"
	"github.com/amirasaad/wallet/pkg/metrics"
	identities "github.com/amirasaad/wallet/pkg/repository/user"
	walletsvc "github.com/amirasaad/wallet/pkg/service/wallet"
	"github.com/amirasaad/wallet/pkg/store"
	"github.com/amirasaad/wallet/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type WalletServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	mem     *store.MemoryStore
	users   identities.Repository
	svc     *walletsvc.Service
	clock   *clock.Fake
	metrics *metrics.Metrics
}

func (s *WalletServiceTestSuite) identity(username string) *user.User {
	got, err := s.users.Get(s.ctx, username)
	s.Require().NoError(err)
	return got
}

func (s *WalletServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mem = store.NewMemoryStore()
	s.clock = clock.NewFake(time.Unix(1_700_000_000, 0))
	s.metrics = metrics.New()
	users := repouser.New(s.mem)
	s.users = users
	for _, name := range []string{"alice", "bobby"} {
		u, err := user.New(name, name+"@x.com", utils.HashPassword("pw1"), false)
		s.Require().NoError(err)
		s.Require().NoError(users.Create(s.ctx, u))
	}
	s.svc = walletsvc.New(users, repowallet.New(s.mem), slog.Default(),
		walletsvc.WithClock(s.clock),
		walletsvc.WithIDGenerator(&idgen.Sequence{Prefix: "id"}),
		walletsvc.WithMetrics(s.metrics),
	)
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func (s *WalletServiceTestSuite) createWallet(username string) string {
	id, err := s.svc.CreateWallet(s.ctx, username)
	s.Require().NoError(err)
	return id
}

func (s *WalletServiceTestSuite) TestCreateWallet() {
	id := s.createWallet("alice")

	w, err := s.svc.GetWallet(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("alice", w.Owner)
	s.True(w.Balance.IsZero())
	s.Empty(w.TransactionIDs)
	s.Equal(id, s.identity("alice").WalletID)

	mine, err := s.svc.GetUserWallet(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(id, mine.ID)
}

func (s *WalletServiceTestSuite) TestCreateWallet_Twice() {
	first := s.createWallet("alice")

	_, err := s.svc.CreateWallet(s.ctx, "alice")
	s.ErrorIs(err, domain.ErrAlreadyExists)
	s.Equal(first, s.identity("alice").WalletID)
	s.Equal(1, s.mem.Len(store.Wallets))
}

func (s *WalletServiceTestSuite) TestCreateWallet_UnknownUser() {
	_, err := s.svc.CreateWallet(s.ctx, "ghost")
	s.ErrorIs(err, user.ErrUserNotFound)
	s.Equal(0, s.mem.Len(store.Wallets))
}

func (s *WalletServiceTestSuite) TestCreateWallet_WalletWriteFails() {
	s.mem.FailPuts(store.Wallets)
	_, err := s.svc.CreateWallet(s.ctx, "alice")
	s.ErrorIs(err, domain.ErrPersistence)
	s.False(s.identity("alice").HasWallet())
}

func (s *WalletServiceTestSuite) TestCreateWallet_IdentityWriteRollsBack() {
	s.mem.FailPuts(store.Users)
	_, err := s.svc.CreateWallet(s.ctx, "alice")
	s.ErrorIs(err, domain.ErrPersistence)
	s.NotErrorIs(err, walletsvc.ErrRollbackFailed)
	s.Equal(0, s.mem.Len(store.Wallets), "new wallet is removed")
	s.False(s.identity("alice").HasWallet())
}

func (s *WalletServiceTestSuite) TestCreateWallet_RollbackFails() {
	s.mem.FailPuts(store.Users)
	s.mem.SetDeleteHook(func(store.Namespace, string) bool { return false })
	_, err := s.svc.CreateWallet(s.ctx, "alice")
	s.ErrorIs(err, walletsvc.ErrRollbackFailed)
	s.ErrorIs(err, domain.ErrPersistence)
	s.True(walletsvc.IsPartial(err))
	s.Equal(1, s.mem.Len(store.Wallets), "orphaned wallet stays behind")
}

func (s *WalletServiceTestSuite) TestApplyTransaction_Scenario() {
	id := s.createWallet("alice")

	tx, balance, err := s.svc.ApplyTransaction(s.ctx, id, dec(50), wallet.Credit, "initial")
	s.Require().NoError(err)
	s.NotEmpty(tx.ID)
	s.True(balance.Equal(dec(50)))
	s.Equal(s.clock.Now().Unix(), tx.Timestamp)

	_, _, err = s.svc.ApplyTransaction(s.ctx, id, dec(80), wallet.Debit, "overdraw")
	s.ErrorIs(err, domain.ErrInsufficientFunds)

	w, err := s.svc.GetWallet(s.ctx, id)
	s.Require().NoError(err)
	s.True(w.Balance.Equal(dec(50)))
	s.Len(w.TransactionIDs, 1)
	s.Equal(1, s.mem.Len(store.Transactions))

	s.InDelta(1, testutil.ToFloat64(s.metrics.Transactions.WithLabelValues("credit", "success")), 0)
	s.InDelta(1, testutil.ToFloat64(s.metrics.Transactions.WithLabelValues("debit", "failure")), 0)
}

func (s *WalletServiceTestSuite) TestApplyTransaction_ExactBalance() {
	id := s.createWallet("alice")
	_, _, err := s.svc.ApplyTransaction(s.ctx, id, dec(10.5), wallet.Credit, "")
	s.Require().NoError(err)

	_, balance, err := s.svc.ApplyTransaction(s.ctx, id, dec(10.5), wallet.Debit, "")
	s.Require().NoError(err)
	s.True(balance.IsZero())
}

func (s *WalletServiceTestSuite) TestApplyTransaction_Validation() {
	_, _, err := s.svc.ApplyTransaction(s.ctx, "missing", dec(1), wallet.Kind("refund"), "")
	s.ErrorIs(err, domain.ErrInvalidKind, "kind is checked before the wallet is loaded")

	_, _, err = s.svc.ApplyTransaction(s.ctx, "missing", dec(1), wallet.Credit, "")
	s.ErrorIs(err, domain.ErrNotFound)

	id := s.createWallet("alice")
	for _, amount := range []decimal.Decimal{decimal.Zero, dec(-5)} {
		_, _, err = s.svc.ApplyTransaction(s.ctx, id, amount, wallet.Credit, "")
		s.ErrorIs(err, domain.ErrInvalidAmount)
	}
}

func (s *WalletServiceTestSuite) TestApplyTransaction_TransactionWriteFails() {
	id := s.createWallet("alice")
	s.mem.FailPuts(store.Transactions)

	_, _, err := s.svc.ApplyTransaction(s.ctx, id, dec(5), wallet.Credit, "")
	s.ErrorIs(err, domain.ErrPersistence)
	s.False(walletsvc.IsPartial(err))

	w, err := s.svc.GetWallet(s.ctx, id)
	s.Require().NoError(err)
	s.True(w.Balance.IsZero())
}

func (s *WalletServiceTestSuite) TestApplyTransaction_OrphanedTransaction() {
	id := s.createWallet("alice")
	s.mem.FailPuts(store.Wallets)

	_, _, err := s.svc.ApplyTransaction(s.ctx, id, dec(5), wallet.Credit, "")
	s.ErrorIs(err, walletsvc.ErrOrphanedTransaction)
	s.ErrorIs(err, domain.ErrPersistence)

	var orphan *walletsvc.OrphanedTransactionError
	s.Require().True(errors.As(err, &orphan))
	s.Equal(id, orphan.WalletID)
	s.Equal(1, s.mem.Len(store.Transactions))

	w, err := s.svc.GetWallet(s.ctx, id)
	s.Require().NoError(err)
	s.True(w.Balance.IsZero(), "balance is untouched")
	s.Empty(w.TransactionIDs)
}

func (s *WalletServiceTestSuite) TestListTransactions() {
	id := s.createWallet("alice")
	_, _, err := s.svc.ApplyTransaction(s.ctx, id, dec(30), wallet.Credit, "first")
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, _, err = s.svc.ApplyTransaction(s.ctx, id, dec(10), wallet.Debit, "second")
	s.Require().NoError(err)

	txs, err := s.svc.ListTransactions(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(txs, 2)
	s.Equal("first", txs[0].Description)
	s.Equal("second", txs[1].Description)
	s.Equal(wallet.Debit, txs[1].Kind)
	s.True(txs[1].Amount.Equal(dec(10)), "amount is stored as a magnitude")

	w, err := s.svc.GetWallet(s.ctx, id)
	s.Require().NoError(err)
	s.Require().True(s.mem.Delete(s.ctx, store.Transactions, w.TransactionIDs[0]))
	txs, err = s.svc.ListTransactions(s.ctx, id)
	s.Require().NoError(err)
	s.Len(txs, 1, "unresolvable ids are skipped")

	_, err = s.svc.ListTransactions(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *WalletServiceTestSuite) TestTransfer() {
	from := s.createWallet("alice")
	to := s.createWallet("bobby")
	_, _, err := s.svc.ApplyTransaction(s.ctx, from, dec(100), wallet.Credit, "")
	s.Require().NoError(err)

	result, err := s.svc.Transfer(s.ctx, from, to, dec(40), "rent")
	s.Require().NoError(err)
	s.True(result.FromBalance.Equal(dec(60)))
	s.True(result.ToBalance.Equal(dec(40)))
	s.Equal("rent", result.Debit.Description)
	s.Equal("Received from alice", result.Credit.Description)
	s.InDelta(1, testutil.ToFloat64(s.metrics.Transfers.WithLabelValues("success")), 0)
}

func (s *WalletServiceTestSuite) TestTransfer_RejectedBeforeDebit() {
	from := s.createWallet("alice")
	_, _, err := s.svc.ApplyTransaction(s.ctx, from, dec(10), wallet.Credit, "")
	s.Require().NoError(err)

	_, err = s.svc.Transfer(s.ctx, from, from, dec(1), "")
	s.ErrorIs(err, wallet.ErrSameWallet)

	_, err = s.svc.Transfer(s.ctx, from, "missing", dec(1), "")
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.svc.Transfer(s.ctx, from, "missing", dec(0), "")
	s.ErrorIs(err, domain.ErrInvalidAmount)

	w, err := s.svc.GetWallet(s.ctx, from)
	s.Require().NoError(err)
	s.True(w.Balance.Equal(dec(10)))
	s.Len(w.TransactionIDs, 1)
}

func (s *WalletServiceTestSuite) TestTransfer_RetiredDestination() {
	from := s.createWallet("alice")
	to := s.createWallet("bobby")
	_, _, err := s.svc.ApplyTransaction(s.ctx, from, dec(10), wallet.Credit, "")
	s.Require().NoError(err)
	s.Require().True(s.users.Delete(s.ctx, "bobby"))

	retired, err := s.svc.GetWallet(s.ctx, to)
	s.Require().NoError(err, "the ledger keeps the wallet")
	s.False(s.svc.Live(s.ctx, retired))

	_, err = s.svc.Transfer(s.ctx, from, to, dec(1), "")
	s.ErrorIs(err, domain.ErrNotFound)

	w, err := s.svc.GetWallet(s.ctx, from)
	s.Require().NoError(err)
	s.True(w.Balance.Equal(dec(10)), "no debit was applied")
}

func (s *WalletServiceTestSuite) TestLive_ReRegisteredOwner() {
	old := s.createWallet("alice")
	s.Require().True(s.users.Delete(s.ctx, "alice"))
	u, err := user.New("alice", "new@x.com", utils.HashPassword("pw2"), false)
	s.Require().NoError(err)
	s.Require().NoError(s.users.Create(s.ctx, u))
	fresh := s.createWallet("alice")

	oldWallet, err := s.svc.GetWallet(s.ctx, old)
	s.Require().NoError(err)
	freshWallet, err := s.svc.GetWallet(s.ctx, fresh)
	s.Require().NoError(err)
	s.False(s.svc.Live(s.ctx, oldWallet))
	s.True(s.svc.Live(s.ctx, freshWallet))
}

func (s *WalletServiceTestSuite) TestTransfer_InsufficientFunds() {
	from := s.createWallet("alice")
	to := s.createWallet("bobby")
	_, err := s.svc.Transfer(s.ctx, from, to, dec(1), "")
	s.ErrorIs(err, domain.ErrInsufficientFunds)
	s.False(walletsvc.IsPartial(err))
}

func (s *WalletServiceTestSuite) TestTransfer_CreditLegFails() {
	from := s.createWallet("alice")
	to := s.createWallet("bobby")
	_, _, err := s.svc.ApplyTransaction(s.ctx, from, dec(20), wallet.Credit, "")
	s.Require().NoError(err)

	s.mem.SetPutHook(func(ns store.Namespace, key string) error {
		if ns == store.Wallets && key == to {
			return store.ErrInjected
		}
		return nil
	})
	result, err := s.svc.Transfer(s.ctx, from, to, dec(5), "")
	s.ErrorIs(err, walletsvc.ErrTransferIncomplete)
	s.ErrorIs(err, domain.ErrPersistence)

	var incomplete *walletsvc.TransferIncompleteError
	s.Require().True(errors.As(err, &incomplete))
	s.Equal(result.DebitID(), incomplete.DebitID)
	s.Nil(result.Credit)

	src, err := s.svc.GetWallet(s.ctx, from)
	s.Require().NoError(err)
	s.True(src.Balance.Equal(dec(15)), "debit is not compensated")
	dst, err := s.svc.GetWallet(s.ctx, to)
	s.Require().NoError(err)
	s.True(dst.Balance.IsZero())
	s.InDelta(1, testutil.ToFloat64(s.metrics.Transfers.WithLabelValues("partial")), 0)
}

func (s *WalletServiceTestSuite) TestApplyTransaction_ConcurrentCredits() {
	id := s.createWallet("alice")
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.svc.ApplyTransaction(s.ctx, id, dec(1), wallet.Credit, "")
			s.NoError(err)
		}()
	}
	wg.Wait()

	w, err := s.svc.GetWallet(s.ctx, id)
	s.Require().NoError(err)
	s.True(w.Balance.Equal(dec(20)))
	s.Len(w.TransactionIDs, 20)
}

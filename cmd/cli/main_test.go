package main

import (
	"bufio"
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amirasaad/wallet/pkg/app"
	"github.com/amirasaad/wallet/pkg/domain"
	"github.com/amirasaad/wallet/pkg/idgen"
	"github.com/amirasaad/wallet/pkg/store"
	"github.com/amirasaad/wallet/webapi/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCLI(t *testing.T, a *app.App, stdin string) (*cli, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &cli{
		app:       a,
		in:        bufio.NewReader(strings.NewReader(stdin)),
		out:       out,
		tokenFile: filepath.Join(t.TempDir(), "token"),
		password: func(*cli, string) (string, error) {
			return "secret1", nil
		},
	}, out
}

func newApp() *app.App {
	return app.New(&app.Deps{
		Store:  store.NewMemoryStore(),
		Logger: slog.New(slog.DiscardHandler),
		Codes:  idgen.FixedCode("123456"),
	}, testutils.Config())
}

func TestCLI_Flow(t *testing.T) {
	a := newApp()
	c, out := newCLI(t, a, "123456\n")

	require.NoError(t, c.run([]string{"register", "alice", "alice@example.com"}))
	require.NoError(t, c.run([]string{"login", "alice"}))
	assert.Contains(t, out.String(), "Your one-time code is 123456")

	data, err := os.ReadFile(c.tokenFile)
	require.NoError(t, err)
	username, err := a.AuthService.Validate(t.Context(), string(data))
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	require.NoError(t, c.run([]string{"wallet", "create"}))
	require.NoError(t, c.run([]string{"tx", "apply", "credit", "25.5", "pocket", "money"}))
	require.NoError(t, c.run([]string{"tx", "apply", "debit", "5"}))
	out.Reset()
	require.NoError(t, c.run([]string{"wallet", "show"}))
	assert.Contains(t, out.String(), "balance: 20.50 (2 transactions)")

	out.Reset()
	require.NoError(t, c.run([]string{"tx", "list"}))
	assert.Contains(t, out.String(), "pocket money")
	assert.Contains(t, out.String(), "-5.00")

	require.NoError(t, c.run([]string{"logout"}))
	assert.ErrorIs(t, c.run([]string{"profile"}), errNotLoggedIn)
	_, err = a.AuthService.Validate(t.Context(), string(data))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCLI_Transfer(t *testing.T) {
	a := newApp()
	ctx := t.Context()
	_, err := a.UserService.Register(ctx, "bobby", "pw", "bob@example.com")
	require.NoError(t, err)
	to, err := a.WalletService.CreateWallet(ctx, "bobby")
	require.NoError(t, err)

	c, out := newCLI(t, a, "123456\n")
	require.NoError(t, c.run([]string{"register", "alice", "alice@example.com"}))
	require.NoError(t, c.run([]string{"login", "alice"}))
	require.NoError(t, c.run([]string{"wallet", "create"}))
	require.NoError(t, c.run([]string{"tx", "apply", "credit", "10"}))

	err = c.run([]string{"transfer", to, "11"})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	require.NoError(t, c.run([]string{"transfer", to, "4", "lunch"}))
	assert.Contains(t, out.String(), "New balance: 6.00")

	w, err := a.WalletService.GetWallet(ctx, to)
	require.NoError(t, err)
	assert.Equal(t, "4", w.Balance.String())
}

func TestCLI_Errors(t *testing.T) {
	c, _ := newCLI(t, newApp(), "000000\n")

	assert.ErrorIs(t, c.run([]string{"wallet"}), errUsage)
	assert.ErrorIs(t, c.run([]string{"tx", "apply", "credit"}), errUsage)
	assert.Error(t, c.run([]string{"frobnicate"}))
	assert.ErrorIs(t, c.run([]string{"wallet", "show"}), errNotLoggedIn)

	require.NoError(t, c.run([]string{"register", "alice", "alice@example.com"}))
	assert.ErrorIs(t, c.run([]string{"login", "alice"}), domain.ErrInvalidOTP)
	assert.ErrorIs(t, c.run([]string{"tx", "apply", "refund", "1"}), domain.ErrInvalidKind)
}

func TestCLI_BootstrapAdmin(t *testing.T) {
	a := newApp()
	c, _ := newCLI(t, a, "")
	require.NoError(t, c.run([]string{"bootstrap-admin", "root", "root@example.com"}))
	assert.ErrorIs(t, c.run([]string{"bootstrap-admin", "root2", "root2@example.com"}), domain.ErrForbidden)

	u, err := a.UserService.GetProfile(t.Context(), "root")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}

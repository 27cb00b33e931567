package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/wallet/pkg/app"
	"github.com/amirasaad/wallet/pkg/domain/wallet"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

var (
	errUsage       = errors.New("invalid arguments; run without arguments for usage")
	errNotLoggedIn = errors.New("not logged in; run 'login' first")
)

type cli struct {
	app       *app.App
	in        *bufio.Reader
	out       io.Writer
	tokenFile string
	// password prompts for a secret without echo.
	password func(c *cli, prompt string) (string, error)
}

func readPassword(c *cli, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return c.prompt(prompt)
	}
	fmt.Fprint(c.out, prompt) //nolint: errcheck
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(c.out) //nolint: errcheck
	return string(secret), err
}

func (c *cli) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label) //nolint: errcheck
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *cli) ok(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(c.out, format+"\n", args...) //nolint: errcheck
}

func (c *cli) info(format string, args ...any) {
	color.New(color.FgCyan).Fprintf(c.out, format+"\n", args...) //nolint: errcheck
}

func (c *cli) run(args []string) error {
	ctx := context.Background()
	switch args[0] {
	case "register", "bootstrap-admin":
		if len(args) != 3 {
			return errUsage
		}
		return c.register(ctx, args[0] == "bootstrap-admin", args[1], args[2])
	case "login":
		if len(args) != 2 {
			return errUsage
		}
		return c.login(ctx, args[1])
	case "logout":
		return c.logout(ctx)
	case "profile":
		return c.profile(ctx)
	case "wallet":
		if len(args) != 2 {
			return errUsage
		}
		switch args[1] {
		case "create":
			return c.createWallet(ctx)
		case "show":
			return c.showWallet(ctx)
		}
		return errUsage
	case "tx":
		if len(args) >= 4 && args[1] == "apply" {
			return c.apply(ctx, args[2], args[3], strings.Join(args[4:], " "))
		}
		if len(args) == 2 && args[1] == "list" {
			return c.listTransactions(ctx)
		}
		return errUsage
	case "transfer":
		if len(args) < 3 {
			return errUsage
		}
		return c.transfer(ctx, args[1], args[2], strings.Join(args[3:], " "))
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (c *cli) register(ctx context.Context, admin bool, username, email string) error {
	password, err := c.password(c, "Password: ")
	if err != nil {
		return err
	}
	if admin {
		if _, err = c.app.UserService.BootstrapAdmin(ctx, username, password, email); err != nil {
			return err
		}
		c.ok("Admin %s created", username)
		return nil
	}
	if _, err = c.app.UserService.Register(ctx, username, password, email); err != nil {
		return err
	}
	c.ok("User %s registered", username)
	return nil
}

func (c *cli) login(ctx context.Context, username string) error {
	password, err := c.password(c, "Password: ")
	if err != nil {
		return err
	}
	code, err := c.app.AuthService.BeginLogin(ctx, username, password)
	if err != nil {
		return err
	}
	c.info("Your one-time code is %s", code)
	entered, err := c.prompt("Enter code: ")
	if err != nil {
		return err
	}
	token, err := c.app.AuthService.CompleteLogin(ctx, username, entered)
	if err != nil {
		return err
	}
	if err = os.WriteFile(c.tokenFile, []byte(token), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	c.ok("Logged in as %s", username)
	return nil
}

// session resolves the saved token to its username.
func (c *cli) session(ctx context.Context) (string, string, error) {
	data, err := os.ReadFile(c.tokenFile)
	if err != nil {
		return "", "", errNotLoggedIn
	}
	token := strings.TrimSpace(string(data))
	username, err := c.app.AuthService.Validate(ctx, token)
	if err != nil {
		return "", "", err
	}
	return username, token, nil
}

func (c *cli) logout(ctx context.Context) error {
	_, token, err := c.session(ctx)
	if err != nil {
		return err
	}
	c.app.AuthService.Revoke(ctx, token)
	if err = os.Remove(c.tokenFile); err != nil {
		return err
	}
	c.ok("Logged out")
	return nil
}

func (c *cli) profile(ctx context.Context) error {
	username, _, err := c.session(ctx)
	if err != nil {
		return err
	}
	u, err := c.app.UserService.GetProfile(ctx, username)
	if err != nil {
		return err
	}
	c.info("Username: %s", u.Username)
	c.info("Email:    %s", u.Email)
	c.info("Admin:    %t", u.IsAdmin)
	if u.HasWallet() {
		c.info("Wallet:   %s", u.WalletID)
	}
	return nil
}

func (c *cli) createWallet(ctx context.Context) error {
	username, _, err := c.session(ctx)
	if err != nil {
		return err
	}
	id, err := c.app.WalletService.CreateWallet(ctx, username)
	if err != nil {
		return err
	}
	c.ok("Wallet created: %s", id)
	return nil
}

func (c *cli) ownWallet(ctx context.Context) (*wallet.Wallet, error) {
	username, _, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	return c.app.WalletService.GetUserWallet(ctx, username)
}

func (c *cli) showWallet(ctx context.Context) error {
	w, err := c.ownWallet(ctx)
	if err != nil {
		return err
	}
	c.info("Wallet %s balance: %s (%d transactions)", w.ID, w.Balance.StringFixed(2), len(w.TransactionIDs))
	return nil
}

func (c *cli) apply(ctx context.Context, kindArg, amountArg, description string) error {
	kind, err := wallet.ParseKind(kindArg)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(amountArg)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountArg, wallet.ErrInvalidAmount)
	}
	w, err := c.ownWallet(ctx)
	if err != nil {
		return err
	}
	tx, balance, err := c.app.WalletService.ApplyTransaction(ctx, w.ID, amount, kind, description)
	if err != nil {
		return err
	}
	c.ok("Applied %s of %s (%s). New balance: %s", kind, amount.StringFixed(2), tx.ID, balance.StringFixed(2))
	return nil
}

func (c *cli) listTransactions(ctx context.Context) error {
	w, err := c.ownWallet(ctx)
	if err != nil {
		return err
	}
	txs, err := c.app.WalletService.ListTransactions(ctx, w.ID)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		c.info("No transactions")
		return nil
	}
	for _, tx := range txs {
		line := fmt.Sprintf("%d  %-6s %12s  %s", tx.Timestamp, tx.Kind, tx.Signed().StringFixed(2), tx.Description)
		if tx.Kind == wallet.Debit {
			color.New(color.FgRed).Fprintln(c.out, line) //nolint: errcheck
		} else {
			color.New(color.FgGreen).Fprintln(c.out, line) //nolint: errcheck
		}
	}
	return nil
}

func (c *cli) transfer(ctx context.Context, to, amountArg, description string) error {
	amount, err := decimal.NewFromString(amountArg)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountArg, wallet.ErrInvalidAmount)
	}
	w, err := c.ownWallet(ctx)
	if err != nil {
		return err
	}
	result, err := c.app.WalletService.Transfer(ctx, w.ID, to, amount, description)
	if err != nil {
		if id := result.DebitID(); id != "" {
			color.New(color.FgYellow).Fprintf(c.out, "Debit %s was applied but not credited\n", id) //nolint: errcheck
		}
		return err
	}
	c.ok("Transferred %s to %s. New balance: %s", amount.StringFixed(2), to, result.FromBalance.StringFixed(2))
	return nil
}

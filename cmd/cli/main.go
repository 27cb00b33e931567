// Command cli drives the wallet services in-process against the configured
// store.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/amirasaad/wallet/infra/initializer"
	"github.com/amirasaad/wallet/pkg/app"
	"github.com/amirasaad/wallet/pkg/config"
	"github.com/fatih/color"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  register <username> <email>
  bootstrap-admin <username> <email>
  login <username>
  logout
  profile
  wallet create | wallet show
  tx apply <credit|debit> <amount> [description]
  tx list
  transfer <to_wallet_id> <amount> [description]`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	cfg, err := config.Load(".env")
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize dependencies: %v", err)
		os.Exit(1)
	}
	wallet := app.New(deps, cfg)
	defer wallet.Close() //nolint: errcheck

	c := &cli{
		app:       wallet,
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		tokenFile: tokenFile(),
		password:  readPassword,
	}
	if err = c.run(os.Args[1:]); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err) //nolint: errcheck
		os.Exit(1)
	}
}

func tokenFile() string {
	if p := os.Getenv("WALLET_TOKEN_FILE"); p != "" {
		return p
	}
	return ".wallet_token"
}

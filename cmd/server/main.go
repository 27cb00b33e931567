package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/amirasaad/wallet/docs"
	"github.com/amirasaad/wallet/infra/initializer"
	"github.com/amirasaad/wallet/pkg/app"
	"github.com/amirasaad/wallet/pkg/config"
	"github.com/amirasaad/wallet/webapi"
	log "github.com/charmbracelet/log"
)

// @title Wallet API
// @version 1.0.0
// @description Wallet identity and ledger API
// @contact.name API Support
// @license.name MIT
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	wallet := app.New(deps, cfg)
	defer func() {
		if cerr := wallet.Close(); cerr != nil {
			logger.Error("failed to close store", "error", cerr)
		}
	}()

	fiberApp := webapi.SetupApp(wallet)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		if serr := fiberApp.ShutdownWithTimeout(10 * time.Second); serr != nil {
			logger.Error("Shutdown failed", "error", serr)
		}
	}()

	addr := cfg.Server.Addr()
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		"storage", cfg.Storage.Backend,
	)
	if err = fiberApp.Listen(addr); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

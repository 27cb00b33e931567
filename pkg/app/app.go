// Package app wires the wallet services over one record store.
package app

import (
	"log/slog"

	repouser "github.com/amirasaad/wallet/infra/repository/user"
	repowallet "github.com/amirasaad/wallet/infra/repository/wallet"
	"github.com/amirasaad/wallet/pkg/clock"
	"github.com/amirasaad/wallet/pkg/config"
	"github.com/amirasaad/wallet/pkg/idgen"
	"github.com/amirasaad/wallet/pkg/metrics"
	"github.com/amirasaad/wallet/pkg/service/auth"
	"github.com/amirasaad/wallet/pkg/service/otp"
	"github.com/amirasaad/wallet/pkg/service/user"
	"github.com/amirasaad/wallet/pkg/service/wallet"
	"github.com/amirasaad/wallet/pkg/store"
	"github.com/amirasaad/wallet/pkg/utils"
)

// Deps contains the infrastructure the services are built on. Clock, IDs
// and Codes default to the real implementations when nil.
type Deps struct {
	Store   store.Store
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	Clock   clock.Clock
	IDs     idgen.Generator
	Codes   idgen.CodeGenerator
	// Close releases the store, if it holds resources.
	Close func() error
}

type App struct {
	Deps          *Deps
	Config        *config.App
	OTPService    *otp.Service
	AuthService   *auth.Service
	UserService   *user.Service
	WalletService *wallet.Service
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.IDs == nil {
		deps.IDs = idgen.Random{}
	}
	if deps.Codes == nil {
		deps.Codes = idgen.SixDigits
	}
	hasher := utils.NewHasher(cfg.Auth.Hasher, cfg.Auth.BcryptCost)
	users := repouser.New(deps.Store)
	ledger := repowallet.New(deps.Store)

	app := &App{Deps: deps, Config: cfg}
	app.OTPService = otp.New(deps.Store, deps.Logger,
		otp.WithTTL(cfg.Auth.OTPTTL),
		otp.WithClock(deps.Clock),
		otp.WithCodeGenerator(deps.Codes),
		otp.WithMetrics(deps.Metrics),
	)
	app.AuthService = auth.New(deps.Store, users, app.OTPService, deps.Logger,
		auth.WithSessionTTL(cfg.Auth.SessionTTL),
		auth.WithClock(deps.Clock),
		auth.WithTokenGenerator(deps.IDs),
		auth.WithHasher(hasher),
		auth.WithMetrics(deps.Metrics),
	)
	app.UserService = user.New(users, hasher, app.AuthService, deps.Logger)
	app.WalletService = wallet.New(users, ledger, deps.Logger,
		wallet.WithClock(deps.Clock),
		wallet.WithIDGenerator(deps.IDs),
		wallet.WithMetrics(deps.Metrics),
	)
	return app
}

// Close releases the underlying store.
func (a *App) Close() error {
	if a.Deps.Close == nil {
		return nil
	}
	return a.Deps.Close()
}

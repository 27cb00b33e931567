// Package webapi provides the HTTP API of the wallet service.
// It is organized into sub-packages per route group:
// - auth: password and one-time code login, logout
// - user: self-service identity management
// - wallet: wallets, transactions and transfers
// - admin: identity management for admins
package webapi

import (
	"errors"

	"github.com/amirasaad/wallet/pkg/app"
	"github.com/amirasaad/wallet/pkg/middleware"
	adminweb "github.com/amirasaad/wallet/webapi/admin"
	authweb "github.com/amirasaad/wallet/webapi/auth"
	"github.com/amirasaad/wallet/webapi/common"
	userweb "github.com/amirasaad/wallet/webapi/user"
	walletweb "github.com/amirasaad/wallet/webapi/wallet"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	authSvc := app.AuthService
	userSvc := app.UserService
	walletSvc := app.WalletService

	fiberApp := fiber.New(fiber.Config{
		ProxyHeader:             app.Config.Server.ProxyHeader,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          app.Config.Server.TrustedProxies,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
	}))
	if app.Deps.Metrics != nil {
		fiberApp.Get("/metrics", adaptor.HTTPHandler(
			promhttp.HandlerFor(app.Deps.Metrics.Registry, promhttp.HandlerOpts{}),
		))
	}

	// Client IP comes from the proxy header only when the peer is a
	// trusted proxy, otherwise from the connection.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        app.Config.RateLimit.MaxRequests,
		Expiration: app.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(middleware.Metrics(app.Deps.Metrics))

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Wallet API is running!")
	})

	authweb.Routes(fiberApp, authSvc, app.Config.Auth.OTPTTL, app.Config.Auth.SessionTTL)
	userweb.Routes(fiberApp, userSvc, authSvc)
	walletweb.Routes(fiberApp, walletSvc, userSvc, authSvc)
	adminweb.Routes(fiberApp, userSvc, authSvc)
	return fiberApp
}

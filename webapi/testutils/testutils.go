// Package testutils runs HTTP tests against the full route table over an
// in-memory store with a fake clock and a fixed one-time code.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/amirasaad/wallet/pkg/app"
	"github.com/amirasaad/wallet/pkg/clock"
	"github.com/amirasaad/wallet/pkg/config"
	"github.com/amirasaad/wallet/pkg/idgen"
	"github.com/amirasaad/wallet/pkg/metrics"
	"github.com/amirasaad/wallet/pkg/store"
	"github.com/amirasaad/wallet/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

// OTPCode is the one-time code every login in the suite receives.
const OTPCode = "123456"

// Envelope is the decoded form of a success response.
type Envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Problem is the decoded form of a problem details response.
type Problem struct {
	Title  string         `json:"title"`
	Status int            `json:"status"`
	Detail string         `json:"detail"`
	Errors map[string]any `json:"errors"`
}

// Config returns a configuration suitable for tests: memory backend,
// a generous rate limit and the default TTLs.
func Config() *config.App {
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:       &config.Log{Format: "text"},
		Storage:   &config.Storage{Backend: config.BackendMemory},
		Auth:      &config.Auth{Hasher: config.HasherSHA256, OTPTTL: 5 * time.Minute, SessionTTL: 24 * time.Hour},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
	}
}

// Suite holds a fresh application per test.
type Suite struct {
	suite.Suite
	Store    *store.MemoryStore
	Clock    *clock.Fake
	Metrics  *metrics.Metrics
	Services *app.App
	App      *fiber.App
}

// SetupTest builds the application over an empty store.
func (s *Suite) SetupTest() {
	s.Store = store.NewMemoryStore()
	s.Clock = clock.NewFake(time.Unix(1_700_000_000, 0))
	s.Metrics = metrics.New()
	s.Services = app.New(&app.Deps{
		Store:   s.Store,
		Metrics: s.Metrics,
		Logger:  slog.New(slog.DiscardHandler),
		Clock:   s.Clock,
		Codes:   idgen.FixedCode(OTPCode),
	}, Config())
	s.App = webapi.SetupApp(s.Services)
}

// MakeRequest sends a request with an optional JSON body and bearer token.
func (s *Suite) MakeRequest(method, path, token string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.App.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads a JSON response body into v and closes it.
func (s *Suite) Decode(resp *http.Response, v any) {
	defer resp.Body.Close() //nolint: errcheck
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

// Expect asserts the status of resp and decodes its body into v when v is
// not nil.
func (s *Suite) Expect(resp *http.Response, status int, v any) {
	s.Require().Equal(status, resp.StatusCode)
	if v == nil {
		resp.Body.Close() //nolint: errcheck
		return
	}
	s.Decode(resp, v)
}

// Register creates a regular identity.
func (s *Suite) Register(username, password string) {
	resp := s.MakeRequest(http.MethodPost, "/user", "", map[string]string{
		"username": username,
		"password": password,
		"email":    username + "@example.com",
	})
	s.Expect(resp, fiber.StatusCreated, nil)
}

// SeedAdmin creates the first admin identity.
func (s *Suite) SeedAdmin(username, password string) {
	_, err := s.Services.UserService.BootstrapAdmin(s.T().Context(), username, password, username+"@example.com")
	s.Require().NoError(err)
}

// Login runs both login steps and returns the bearer token.
func (s *Suite) Login(username, password string) string {
	resp := s.MakeRequest(http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	s.Expect(resp, fiber.StatusOK, nil)
	resp = s.MakeRequest(http.MethodPost, "/auth/otp", "", map[string]string{
		"username": username,
		"otp":      OTPCode,
	})
	var out Envelope[struct {
		Token string `json:"token"`
	}]
	s.Expect(resp, fiber.StatusOK, &out)
	s.Require().NotEmpty(out.Data.Token)
	return out.Data.Token
}

// CreateWallet creates the wallet of the token's user and returns its id.
func (s *Suite) CreateWallet(token string) string {
	resp := s.MakeRequest(http.MethodPost, "/wallet", token, nil)
	var out Envelope[struct {
		WalletID string `json:"wallet_id"`
	}]
	s.Expect(resp, fiber.StatusCreated, &out)
	return out.Data.WalletID
}

// Credit applies a credit to walletID.
func (s *Suite) Credit(token, walletID, amount string) {
	resp := s.MakeRequest(http.MethodPost, "/wallet/"+walletID+"/transactions", token, map[string]string{
		"amount": amount,
		"type":   "credit",
	})
	s.Expect(resp, fiber.StatusCreated, nil)
}

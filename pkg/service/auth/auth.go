// Package auth is the session engine: the two-step password + one-time
// code login, bearer token validation and revocation.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/wallet/pkg/clock"
	"github.com/amirasaad/wallet/pkg/domain/auth"
	"github.com/amirasaad/wallet/pkg/idgen"
	"github.com/amirasaad/wallet/pkg/metrics"
	repouser "github.com/amirasaad/wallet/pkg/repository/user"
	"github.com/amirasaad/wallet/pkg/store"
	"github.com/amirasaad/wallet/pkg/utils"
)

// DefaultSessionTTL is how long a session token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// dummyPassword is hashed once at construction and verified against when a
// login names an unknown user, so both failure paths do the same work.
const dummyPassword = "wallet-dummy-password"

// OTPEngine issues and consumes second-factor codes.
type OTPEngine interface {
	Issue(ctx context.Context, username string) (string, error)
	Consume(ctx context.Context, username, code string) bool
	Revoke(ctx context.Context, username string) bool
}

// Service is the session engine.
type Service struct {
	users    repouser.Repository
	otp      OTPEngine
	sessions *store.Collection[auth.Session]
	hasher   utils.Hasher
	dummy    string
	tokens   idgen.Generator
	clock    clock.Clock
	ttl      time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithSessionTTL overrides DefaultSessionTTL.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the wall clock.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithTokenGenerator overrides the random token generator.
func WithTokenGenerator(g idgen.Generator) Option {
	return func(s *Service) { s.tokens = g }
}

// WithHasher overrides the SHA-256 password hasher.
func WithHasher(h utils.Hasher) Option {
	return func(s *Service) { s.hasher = h }
}

// WithMetrics records login and session events on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates a session engine storing sessions in the sessions namespace
// of st.
func New(
	st store.Store,
	users repouser.Repository,
	otp OTPEngine,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		users:    users,
		otp:      otp,
		sessions: store.NewCollection[auth.Session](st, store.Sessions),
		hasher:   utils.SHA256Hasher{},
		tokens:   idgen.Random{},
		clock:    clock.System{},
		ttl:      DefaultSessionTTL,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dummy, _ = s.hasher.Hash(dummyPassword)
	return s
}

// Hasher returns the password hasher used to verify credentials.
func (s *Service) Hasher() utils.Hasher {
	return s.hasher
}

// BeginLogin checks the password of username and issues a one-time code.
// Unknown users and wrong passwords fail identically.
func (s *Service) BeginLogin(
	ctx context.Context,
	username, password string,
) (code string, err error) {
	log := s.logger.With("context", "BeginLogin", "username", username)
	log.Debug("BeginLogin called")
	u, err := s.users.Get(ctx, username)
	if err != nil {
		_ = s.hasher.Verify(password, s.dummy)
		s.metrics.Login("password", metrics.ResultFailure)
		log.Error("BeginLogin failed", "error", auth.ErrInvalidCredentials)
		return "", auth.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		s.metrics.Login("password", metrics.ResultFailure)
		log.Error("BeginLogin failed", "error", auth.ErrInvalidCredentials)
		return "", auth.ErrInvalidCredentials
	}
	code, err = s.otp.Issue(ctx, username)
	if err != nil {
		log.Error("BeginLogin failed", "error", err)
		return "", err
	}
	s.metrics.Login("password", metrics.ResultSuccess)
	log.Info("BeginLogin successful")
	return code, nil
}

// CompleteLogin consumes code and opens a session for username.
func (s *Service) CompleteLogin(
	ctx context.Context,
	username, code string,
) (token string, err error) {
	log := s.logger.With("context", "CompleteLogin", "username", username)
	log.Debug("CompleteLogin called")
	if !s.otp.Consume(ctx, username, code) {
		s.metrics.Login("otp", metrics.ResultFailure)
		log.Error("CompleteLogin failed", "error", auth.ErrInvalidOTP)
		return "", auth.ErrInvalidOTP
	}
	if _, err = s.users.Get(ctx, username); err != nil {
		s.metrics.Login("otp", metrics.ResultFailure)
		log.Error("CompleteLogin failed", "error", auth.ErrInvalidOTP, "reason", "identity gone")
		return "", auth.ErrInvalidOTP
	}
	session := &auth.Session{
		Token:    s.tokens.NewID(),
		Username: username,
		Expiry:   s.clock.Now().Add(s.ttl).Unix(),
	}
	if err = s.sessions.Put(ctx, session.Token, session); err != nil {
		log.Error("CompleteLogin failed", "error", err)
		return "", err
	}
	s.metrics.Login("otp", metrics.ResultSuccess)
	s.metrics.Session("created", 1)
	log.Info("CompleteLogin successful", "expiry", session.Expiry)
	return session.Token, nil
}

// Validate returns the username owning token. Absent and expired tokens
// fail with ErrUnauthenticated; an expired session is deleted.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	log := s.logger.With("context", "Validate")
	session, ok := s.sessions.Get(ctx, token)
	if !ok {
		log.Debug("Validate failed", "reason", "absent")
		return "", auth.ErrUnauthenticated
	}
	if session.Expired(s.clock.Now()) {
		s.sessions.Delete(ctx, token)
		s.metrics.Session("expired", 1)
		log.Debug("Validate failed", "reason", "expired", "username", session.Username)
		return "", auth.ErrUnauthenticated
	}
	return session.Username, nil
}

// Revoke deletes the session behind token. It is idempotent and reports
// whether a session was removed.
func (s *Service) Revoke(ctx context.Context, token string) bool {
	removed := s.sessions.Delete(ctx, token)
	if removed {
		s.metrics.Session("revoked", 1)
	}
	s.logger.Info("Revoke called", "removed", removed)
	return removed
}

// RevokeUser deletes every session of username, and any pending one-time
// code, and returns how many sessions were removed.
func (s *Service) RevokeUser(ctx context.Context, username string) int {
	log := s.logger.With("context", "RevokeUser", "username", username)
	log.Debug("RevokeUser called")
	s.otp.Revoke(ctx, username)
	n := 0
	for _, session := range s.sessions.List(ctx) {
		if session.Username != username {
			continue
		}
		if s.sessions.Delete(ctx, session.Token) {
			n++
		}
	}
	s.metrics.Session("revoked", n)
	log.Info("RevokeUser successful", "revoked", n)
	return n
}

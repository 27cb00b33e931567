// Package otp issues and consumes the one-time codes of the second login
// factor. At most one live code exists per username.
package otp

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/amirasaad/wallet/pkg/clock"
	"github.com/amirasaad/wallet/pkg/domain/auth"
	"github.com/amirasaad/wallet/pkg/idgen"
	"github.com/amirasaad/wallet/pkg/metrics"
	"github.com/amirasaad/wallet/pkg/store"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 5 * time.Minute

// Service is the OTP half of the credential engine.
type Service struct {
	codes   *store.Collection[auth.OTP]
	gen     idgen.CodeGenerator
	clock   clock.Clock
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
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

// WithCodeGenerator overrides the six-digit generator.
func WithCodeGenerator(g idgen.CodeGenerator) Option {
	return func(s *Service) { s.gen = g }
}

// WithMetrics records OTP events on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates a Service storing codes in the otps namespace of st.
func New(st store.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		codes:  store.NewCollection[auth.OTP](st, store.OTPs),
		gen:    idgen.SixDigits,
		clock:  clock.System{},
		ttl:    DefaultTTL,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue generates a fresh code for username, replacing any previous one.
// It fails only when the code cannot be generated or stored.
func (s *Service) Issue(ctx context.Context, username string) (code string, err error) {
	log := s.logger.With("context", "Issue", "username", username)
	log.Debug("Issue called")
	code, err = s.gen.NewCode()
	if err != nil {
		log.Error("Issue failed", "error", err)
		return "", store.Persistence("issue otp", err)
	}
	record := &auth.OTP{
		Code:   code,
		Expiry: s.clock.Now().Add(s.ttl).Unix(),
	}
	if err = s.codes.Put(ctx, username, record); err != nil {
		log.Error("Issue failed", "error", err)
		return "", err
	}
	s.metrics.OTP("issued")
	log.Info("Issue successful", "expiry", record.Expiry)
	return code, nil
}

// Consume reports whether code is the live code of username. A matching
// code is deleted so it can be used only once. A mismatch leaves the
// stored code in place; an expired one is removed.
func (s *Service) Consume(ctx context.Context, username, code string) bool {
	log := s.logger.With("context", "Consume", "username", username)
	log.Debug("Consume called")
	record, ok := s.codes.Get(ctx, username)
	if !ok {
		s.metrics.OTP("rejected")
		log.Info("Consume rejected", "reason", "absent")
		return false
	}
	if record.Expired(s.clock.Now()) {
		s.codes.Delete(ctx, username)
		s.metrics.OTP("expired")
		log.Info("Consume rejected", "reason", "expired")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		s.metrics.OTP("rejected")
		log.Info("Consume rejected", "reason", "mismatch")
		return false
	}
	s.codes.Delete(ctx, username)
	s.metrics.OTP("consumed")
	log.Info("Consume successful")
	return true
}

// Revoke deletes the pending code of username and reports whether one
// existed.
func (s *Service) Revoke(ctx context.Context, username string) bool {
	removed := s.codes.Delete(ctx, username)
	if removed {
		s.metrics.OTP("revoked")
	}
	s.logger.Info("Revoke called", "username", username, "removed", removed)
	return removed
}

// Package auth holds the second-factor and session records.
package auth

import (
	"fmt"
	"time"

	"github.com/amirasaad/wallet/pkg/domain"
)

var (
	// ErrInvalidCredentials is returned by the password step of a login.
	ErrInvalidCredentials = fmt.Errorf("auth: %w", domain.ErrInvalidCredentials)
	// ErrInvalidOTP is returned by the one-time code step of a login.
	ErrInvalidOTP = fmt.Errorf("auth: %w", domain.ErrInvalidOTP)
	// ErrUnauthenticated is returned for absent, expired or revoked tokens.
	ErrUnauthenticated = fmt.Errorf("auth: %w", domain.ErrUnauthenticated)
)

// OTP is the live one-time code of a username. At most one exists per
// username; issuing a new code replaces it.
type OTP struct {
	Code   string `json:"code"`
	Expiry int64  `json:"expiry"`
}

// Expired reports whether the code is past its expiry at now.
func (o *OTP) Expired(now time.Time) bool {
	return now.Unix() > o.Expiry
}

// Session is the record behind a bearer token.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Expiry   int64  `json:"expiry"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return now.Unix() > s.Expiry
}

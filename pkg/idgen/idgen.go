// Package idgen generates opaque identifiers and one-time codes.
//
// Identifiers are the 16 bytes of a random UUIDv4 followed by the current
// time in nanoseconds, hex encoded. They are unguessable and safe to use as
// file names.
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator mints unique opaque ids.
type Generator interface {
	NewID() string
}

// CodeGenerator mints numeric one-time codes.
type CodeGenerator interface {
	NewCode() (string, error)
}

// Random is the production Generator.
type Random struct{}

// NewID returns hex(uuidv4) + hex(unix nanos).
func (Random) NewID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:]) + strconv.FormatInt(time.Now().UnixNano(), 16)
}

// Digits generates uniformly random zero-padded codes of a fixed width.
type Digits struct {
	Width int
}

// SixDigits is the code generator used for login OTPs.
var SixDigits = Digits{Width: 6}

// NewCode returns a code in [0, 10^Width) with leading zeros preserved.
func (d Digits) NewCode() (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Width)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", d.Width, n), nil
}

// Sequence is a deterministic Generator for tests: prefix-1, prefix-2, ...
type Sequence struct {
	Prefix string
	mu     sync.Mutex
	n      int
}

// NewID returns the next id of the sequence.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}

// FixedCode always returns the same code.
type FixedCode string

// NewCode returns the fixed code.
func (c FixedCode) NewCode() (string, error) {
	return string(c), nil
}

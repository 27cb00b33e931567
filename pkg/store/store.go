// Package store defines the durable record store every wallet component is
// built on: whole-record put/get/delete/list over a small set of namespaces.
//
// Implementations must make Put atomic with respect to crashes: a reader
// sees either the previous content of a slot or the new content, never a
// partial write. Reads never fail loudly; a missing slot and an unreadable
// slot are both reported as absent.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amirasaad/wallet/pkg/domain"
)

// Namespace groups the slots of one record kind.
type Namespace string

// Namespaces used by the wallet service, one per entity kind.
const (
	Users        Namespace = "users"
	Wallets      Namespace = "wallets"
	Transactions Namespace = "transactions"
	Sessions     Namespace = "sessions"
	OTPs         Namespace = "otps"
)

// Namespaces lists every namespace in use.
var Namespaces = []Namespace{Users, Wallets, Transactions, Sessions, OTPs}

// ErrInvalidKey is returned by Put when a slot key cannot be stored safely.
var ErrInvalidKey = fmt.Errorf("invalid slot key: %w", domain.ErrValidation)

// Store is the durable record store capability.
//
// Put fails with an error wrapping domain.ErrPersistence when the medium
// rejects the write; callers must treat the mutation as not applied.
type Store interface {
	Put(ctx context.Context, ns Namespace, key string, data []byte) error
	Get(ctx context.Context, ns Namespace, key string) ([]byte, bool)
	// Delete reports whether a slot was removed.
	Delete(ctx context.Context, ns Namespace, key string) bool
	// List returns the content of every slot in ns, in no particular order.
	List(ctx context.Context, ns Namespace) [][]byte
}

// ValidKey reports whether key can address a slot. Keys double as file
// names in the file backend, so separators and leading dots are rejected.
func ValidKey(key string) bool {
	if key == "" || len(key) > 200 {
		return false
	}
	if strings.HasPrefix(key, ".") {
		return false
	}
	return !strings.ContainsAny(key, "/\\\x00")
}

// Persistence wraps a backend write failure so that it matches
// domain.ErrPersistence.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

package user

import (
	"fmt"
	"regexp"

	"github.com/amirasaad/wallet/pkg/domain"
	"github.com/amirasaad/wallet/pkg/utils"
)

var (
	// ErrUserNotFound is returned when no identity is stored for a username.
	ErrUserNotFound = fmt.Errorf("user: %w", domain.ErrNotFound)
	// ErrUserAlreadyExists is returned when registering a taken username.
	ErrUserAlreadyExists = fmt.Errorf("user: %w", domain.ErrAlreadyExists)
	// ErrWalletImmutable is returned when an update would change a wallet reference that is already set.
	ErrWalletImmutable = fmt.Errorf("user: wallet reference cannot change: %w", domain.ErrValidation)
	// ErrInvalidUsername is returned for usernames that cannot be used as a record key.
	ErrInvalidUsername = fmt.Errorf("user: invalid username: %w", domain.ErrValidation)
	// ErrInvalidEmail is returned for malformed email addresses.
	ErrInvalidEmail = fmt.Errorf("user: invalid email: %w", domain.ErrValidation)
	// ErrWrongPassword is returned when the current password given to a
	// password change does not match.
	ErrWrongPassword = fmt.Errorf("user: %w", domain.ErrInvalidCredentials)
	// ErrForbidden is returned when a non-admin calls an admin operation.
	ErrForbidden = fmt.Errorf("user: admin required: %w", domain.ErrForbidden)
	// ErrEmptyPassword is returned when a password is blank.
	ErrEmptyPassword = fmt.Errorf("user: password cannot be empty: %w", domain.ErrValidation)
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.-]{2,49}$`)

// User is the identity record, keyed by username.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"is_admin"`
	// WalletID is empty until a wallet is created, then never changes.
	WalletID string `json:"wallet_id"`
}

// New validates the identity fields and returns a user without a wallet.
func New(username, email, passwordHash string, isAdmin bool) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if !utils.IsEmail(email) {
		return nil, ErrInvalidEmail
	}
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		IsAdmin:      isAdmin,
	}, nil
}

// ValidateUsername checks that username is 3-50 characters of letters,
// digits, '_', '-' or '.', not starting with a dot.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// HasWallet reports whether the identity references a wallet.
func (u *User) HasWallet() bool {
	return u.WalletID != ""
}

// CanReplace reports whether next may overwrite u in the identity store.
func (u *User) CanReplace(next *User) error {
	if u.WalletID != "" && next.WalletID != u.WalletID {
		return ErrWalletImmutable
	}
	return nil
}

// Package user provides the identity operations around the login and
// ledger engines: registration, profile and password management, account
// deletion and the admin-only user management calls.
package user

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/amirasaad/wallet/pkg/domain/user"
	userrepo "github.com/amirasaad/wallet/pkg/repository/user"
	"github.com/amirasaad/wallet/pkg/utils"
)

// SessionRevoker ends every session of a user and drops its pending
// one-time code.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, username string) int
}

// Service provides identity operations.
type Service struct {
	users    userrepo.Repository
	hasher   utils.Hasher
	sessions SessionRevoker
	logger   *slog.Logger
}

// New creates a Service. sessions may be nil, in which case deleting a
// user leaves their sessions to expire.
func New(
	users userrepo.Repository,
	hasher utils.Hasher,
	sessions SessionRevoker,
	logger *slog.Logger,
) *Service {
	if hasher == nil {
		hasher = utils.SHA256Hasher{}
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *Service) digest(password string) (string, error) {
	if password == "" {
		return "", user.ErrEmptyPassword
	}
	return s.hasher.Hash(password)
}

func (s *Service) create(
	ctx context.Context,
	username, password, email string,
	isAdmin bool,
) (*user.User, error) {
	digest, err := s.digest(password)
	if err != nil {
		return nil, err
	}
	u, err := user.New(username, strings.TrimSpace(email), digest, isAdmin)
	if err != nil {
		return nil, err
	}
	if err = s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Register creates a non-admin identity without a wallet.
func (s *Service) Register(
	ctx context.Context,
	username, password, email string,
) (u *user.User, err error) {
	log := s.logger.With("context", "Register", "username", username)
	log.Debug("Register called")
	u, err = s.create(ctx, username, password, email, false)
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	log.Info("Register successful")
	return u, nil
}

// GetProfile returns the identity of username.
func (s *Service) GetProfile(ctx context.Context, username string) (*user.User, error) {
	return s.users.Get(ctx, username)
}

// UpdateProfile replaces the email of username.
func (s *Service) UpdateProfile(
	ctx context.Context,
	username, email string,
) (u *user.User, err error) {
	log := s.logger.With("context", "UpdateProfile", "username", username)
	log.Debug("UpdateProfile called")
	email = strings.TrimSpace(email)
	if !utils.IsEmail(email) {
		log.Error("UpdateProfile failed", "error", user.ErrInvalidEmail)
		return nil, user.ErrInvalidEmail
	}
	u, err = s.users.Get(ctx, username)
	if err != nil {
		log.Error("UpdateProfile failed", "error", err)
		return nil, err
	}
	u.Email = email
	if err = s.users.Update(ctx, u); err != nil {
		log.Error("UpdateProfile failed", "error", err)
		return nil, err
	}
	log.Info("UpdateProfile successful")
	return u, nil
}

// ChangePassword replaces the password of username after checking the
// current one.
func (s *Service) ChangePassword(
	ctx context.Context,
	username, oldPassword, newPassword string,
) (err error) {
	log := s.logger.With("context", "ChangePassword", "username", username)
	log.Debug("ChangePassword called")
	u, err := s.users.Get(ctx, username)
	if err != nil {
		log.Error("ChangePassword failed", "error", err)
		return err
	}
	if !s.hasher.Verify(oldPassword, u.PasswordHash) {
		log.Error("ChangePassword failed", "error", user.ErrWrongPassword)
		return user.ErrWrongPassword
	}
	if u.PasswordHash, err = s.digest(newPassword); err != nil {
		log.Error("ChangePassword failed", "error", err)
		return err
	}
	if err = s.users.Update(ctx, u); err != nil {
		log.Error("ChangePassword failed", "error", err)
		return err
	}
	log.Info("ChangePassword successful")
	return nil
}

// DeleteUser removes the identity of username, ends its sessions and drops
// any pending one-time code. The wallet and its transactions stay in the
// ledger, retired: no identity references it any more.
func (s *Service) DeleteUser(ctx context.Context, username string) (err error) {
	log := s.logger.With("context", "DeleteUser", "username", username)
	log.Debug("DeleteUser called")
	if !s.users.Delete(ctx, username) {
		log.Error("DeleteUser failed", "error", user.ErrUserNotFound)
		return user.ErrUserNotFound
	}
	revoked := 0
	if s.sessions != nil {
		revoked = s.sessions.RevokeUser(ctx, username)
	}
	log.Info("DeleteUser successful", "revokedSessions", revoked)
	return nil
}

func (s *Service) requireAdmin(ctx context.Context, caller string) error {
	u, err := s.users.Get(ctx, caller)
	if err != nil || !u.IsAdmin {
		s.logger.Warn("Admin operation refused", "caller", caller)
		return user.ErrForbidden
	}
	return nil
}

// ListUsers returns every identity ordered by username.
func (s *Service) ListUsers(ctx context.Context, caller string) ([]*user.User, error) {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	users := s.users.List(ctx)
	slices.SortFunc(users, func(a, b *user.User) int {
		return strings.Compare(a.Username, b.Username)
	})
	return users, nil
}

// AdminCreateUser creates an identity with an explicit admin flag.
func (s *Service) AdminCreateUser(
	ctx context.Context,
	caller, username, password, email string,
	isAdmin bool,
) (u *user.User, err error) {
	log := s.logger.With("context", "AdminCreateUser", "caller", caller, "username", username)
	log.Debug("AdminCreateUser called")
	if err = s.requireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	u, err = s.create(ctx, username, password, email, isAdmin)
	if err != nil {
		log.Error("AdminCreateUser failed", "error", err)
		return nil, err
	}
	log.Info("AdminCreateUser successful", "isAdmin", isAdmin)
	return u, nil
}

// AdminUpdateUser replaces the email and admin flag of username.
func (s *Service) AdminUpdateUser(
	ctx context.Context,
	caller, username, email string,
	isAdmin bool,
) (u *user.User, err error) {
	log := s.logger.With("context", "AdminUpdateUser", "caller", caller, "username", username)
	log.Debug("AdminUpdateUser called")
	if err = s.requireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if !utils.IsEmail(email) {
		log.Error("AdminUpdateUser failed", "error", user.ErrInvalidEmail)
		return nil, user.ErrInvalidEmail
	}
	u, err = s.users.Get(ctx, username)
	if err != nil {
		log.Error("AdminUpdateUser failed", "error", err)
		return nil, err
	}
	u.Email = email
	u.IsAdmin = isAdmin
	if err = s.users.Update(ctx, u); err != nil {
		log.Error("AdminUpdateUser failed", "error", err)
		return nil, err
	}
	log.Info("AdminUpdateUser successful", "isAdmin", isAdmin)
	return u, nil
}

// ResetPassword replaces the password of username without the current one.
func (s *Service) ResetPassword(
	ctx context.Context,
	caller, username, newPassword string,
) (err error) {
	log := s.logger.With("context", "ResetPassword", "caller", caller, "username", username)
	log.Debug("ResetPassword called")
	if err = s.requireAdmin(ctx, caller); err != nil {
		return err
	}
	u, err := s.users.Get(ctx, username)
	if err != nil {
		log.Error("ResetPassword failed", "error", err)
		return err
	}
	if u.PasswordHash, err = s.digest(newPassword); err != nil {
		log.Error("ResetPassword failed", "error", err)
		return err
	}
	if err = s.users.Update(ctx, u); err != nil {
		log.Error("ResetPassword failed", "error", err)
		return err
	}
	log.Info("ResetPassword successful")
	return nil
}

// BootstrapAdmin creates the first admin identity. It refuses once any
// admin exists, so it can only seed an empty deployment.
func (s *Service) BootstrapAdmin(
	ctx context.Context,
	username, password, email string,
) (u *user.User, err error) {
	log := s.logger.With("context", "BootstrapAdmin", "username", username)
	log.Debug("BootstrapAdmin called")
	if slices.ContainsFunc(s.users.List(ctx), func(u *user.User) bool { return u.IsAdmin }) {
		log.Error("BootstrapAdmin failed", "error", user.ErrForbidden)
		return nil, user.ErrForbidden
	}
	u, err = s.create(ctx, username, password, email, true)
	if err != nil {
		log.Error("BootstrapAdmin failed", "error", err)
		return nil, err
	}
	log.Info("BootstrapAdmin successful")
	return u, nil
}

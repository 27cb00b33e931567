package user

import "github.com/amirasaad/wallet/pkg/domain/user"

// NewUser represents the request body for registering an identity.
type NewUser struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateProfileInput represents the request body for updating the caller's profile.
type UpdateProfileInput struct {
	Email string `json:"email" validate:"required,email,max=50"`
}

// ChangePasswordInput represents the request body for a password change.
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

// Profile is the public view of an identity; the password digest never
// leaves the service.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	WalletID string `json:"wallet_id,omitempty"`
}

// ToProfile maps an identity to its public view.
func ToProfile(u *user.User) Profile {
	return Profile{
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
		WalletID: u.WalletID,
	}
}

// ToProfiles maps a list of identities.
func ToProfiles(users []*user.User) []Profile {
	out := make([]Profile, 0, len(users))
	for _, u := range users {
		out = append(out, ToProfile(u))
	}
	return out
}

package auth

// LoginInput represents the request body for the password step of a login.
type LoginInput struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// OTPInput represents the request body for the one-time code step.
type OTPInput struct {
	Username string `json:"username" validate:"required,max=50"`
	OTP      string `json:"otp" validate:"required,numeric,len=6"`
}

// LoginChallenge is returned by the password step. Delivery of the code
// out of band is not implemented, so it is returned to the caller.
type LoginChallenge struct {
	OTP       string `json:"otp"`
	ExpiresIn int64  `json:"expires_in"`
}

// TokenResponse carries a new bearer token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

package auth

import (
	"time"

	"github.com/amirasaad/wallet/pkg/middleware"
	authsvc "github.com/amirasaad/wallet/pkg/service/auth"
	"github.com/amirasaad/wallet/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the login and logout endpoints.
func Routes(app *fiber.App, authSvc *authsvc.Service, otpTTL, sessionTTL time.Duration) {
	app.Post("/auth/login", Login(authSvc, otpTTL))
	app.Post("/auth/otp", CompleteLogin(authSvc, sessionTTL))
	app.Post("/auth/logout", middleware.Protected(authSvc), Logout(authSvc))
}

// Login checks the password and issues a one-time code.
// @Summary Begin login
// @Description Verify username and password and issue a one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response{data=LoginChallenge}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service, otpTTL time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err // Error already written by BindAndValidate
		}
		code, err := authSvc.BeginLogin(c.UserContext(), input.Username, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Login failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "One-time code issued", LoginChallenge{
			OTP:       code,
			ExpiresIn: int64(otpTTL.Seconds()),
		})
	}
}

// CompleteLogin consumes the one-time code and returns a bearer token.
// @Summary Complete login
// @Description Exchange a one-time code for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body OTPInput true "One-time code"
// @Success 200 {object} common.Response{data=TokenResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/otp [post]
func CompleteLogin(authSvc *authsvc.Service, sessionTTL time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[OTPInput](c)
		if input == nil {
			return err
		}
		token, err := authSvc.CompleteLogin(c.UserContext(), input.Username, input.OTP)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Login failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", TokenResponse{
			Token:     token,
			ExpiresIn: int64(sessionTTL.Seconds()),
		})
	}
}

// Logout revokes the caller's session.
// @Summary Logout
// @Description Revoke the current bearer token
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/logout [post]
// @Security Bearer
func Logout(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authSvc.Revoke(c.UserContext(), middleware.CurrentToken(c))
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Logged out", nil)
	}
}

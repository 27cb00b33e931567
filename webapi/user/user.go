package user

import (
	"github.com/amirasaad/wallet/pkg/middleware"
	usersvc "github.com/amirasaad/wallet/pkg/service/user"
	"github.com/amirasaad/wallet/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the self-service identity endpoints.
func Routes(app *fiber.App, userSvc *usersvc.Service, auth middleware.TokenValidator) {
	protected := middleware.Protected(auth)
	app.Post("/user", Register(userSvc))
	app.Get("/user", protected, GetProfile(userSvc))
	app.Put("/user", protected, UpdateProfile(userSvc))
	app.Put("/user/password", protected, ChangePassword(userSvc))
	app.Delete("/user", protected, DeleteUser(userSvc))
}

// Register creates a new identity.
// @Summary Register a new user
// @Description Create an identity with username, email, and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body NewUser true "User creation data"
// @Success 201 {object} common.Response{data=Profile}
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /user [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewUser](c)
		if input == nil {
			return err // error response already written
		}
		u, err := userSvc.Register(c.UserContext(), input.Username, input.Password, input.Email)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created user", ToProfile(u))
	}
}

// GetProfile returns the caller's identity.
// @Summary Get profile
// @Description Retrieve the identity of the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} common.Response{data=Profile}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user [get]
// @Security Bearer
func GetProfile(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, _ := middleware.CurrentUser(c)
		u, err := userSvc.GetProfile(c.UserContext(), username)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", ToProfile(u))
	}
}

// UpdateProfile replaces the caller's email.
// @Summary Update profile
// @Description Update the email of the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileInput true "Profile data"
// @Success 200 {object} common.Response{data=Profile}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /user [put]
// @Security Bearer
func UpdateProfile(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateProfileInput](c)
		if input == nil {
			return err
		}
		username, _ := middleware.CurrentUser(c)
		u, err := userSvc.UpdateProfile(c.UserContext(), username, input.Email)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated successfully", ToProfile(u))
	}
}

// ChangePassword replaces the caller's password.
// @Summary Change password
// @Description Replace the password after checking the current one
// @Tags users
// @Accept json
// @Produce json
// @Param request body ChangePasswordInput true "Passwords"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /user/password [put]
// @Security Bearer
func ChangePassword(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ChangePasswordInput](c)
		if input == nil {
			return err
		}
		username, _ := middleware.CurrentUser(c)
		if err = userSvc.ChangePassword(c.UserContext(), username, input.OldPassword, input.NewPassword); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't change password", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Password changed", nil)
	}
}

// DeleteUser removes the caller's identity and ends its sessions.
// @Summary Delete user
// @Description Delete the authenticated user's identity
// @Tags users
// @Produce json
// @Success 204 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user [delete]
// @Security Bearer
func DeleteUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, _ := middleware.CurrentUser(c)
		if err := userSvc.DeleteUser(c.UserContext(), username); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "User deleted", nil)
	}
}

// Package admin exposes identity management for admin users.
package admin

import (
	"github.com/amirasaad/wallet/pkg/middleware"
	usersvc "github.com/amirasaad/wallet/pkg/service/user"
	"github.com/amirasaad/wallet/webapi/common"
	userweb "github.com/amirasaad/wallet/webapi/user"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the admin endpoints. The admin flag itself is checked
// by the user service.
func Routes(app *fiber.App, userSvc *usersvc.Service, auth middleware.TokenValidator) {
	g := app.Group("/admin", middleware.Protected(auth))
	g.Get("/users", ListUsers(userSvc))
	g.Post("/users", CreateUser(userSvc))
	g.Put("/users/:username", UpdateUser(userSvc))
	g.Put("/users/:username/password", ResetPassword(userSvc))
}

// ListUsers returns every identity.
// @Summary List users
// @Description List every identity ordered by username
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response{data=[]userweb.Profile}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /admin/users [get]
// @Security Bearer
func ListUsers(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CurrentUser(c)
		users, err := userSvc.ListUsers(c.UserContext(), caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users found", userweb.ToProfiles(users))
	}
}

// CreateUser creates an identity with an explicit admin flag.
// @Summary Create user
// @Description Create an identity, optionally with admin rights
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateUserInput true "User data"
// @Success 201 {object} common.Response{data=userweb.Profile}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /admin/users [post]
// @Security Bearer
func CreateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateUserInput](c)
		if input == nil {
			return err
		}
		caller, _ := middleware.CurrentUser(c)
		u, err := userSvc.AdminCreateUser(c.UserContext(), caller, input.Username, input.Password, input.Email, input.IsAdmin)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created user", userweb.ToProfile(u))
	}
}

// UpdateUser replaces the email and admin flag of an identity.
// @Summary Update user
// @Description Update another identity's email and admin flag
// @Tags admin
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body UpdateUserInput true "User data"
// @Success 200 {object} common.Response{data=userweb.Profile}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /admin/users/{username} [put]
// @Security Bearer
func UpdateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateUserInput](c)
		if input == nil {
			return err
		}
		caller, _ := middleware.CurrentUser(c)
		u, err := userSvc.AdminUpdateUser(c.UserContext(), caller, c.Params("username"), input.Email, input.IsAdmin)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated successfully", userweb.ToProfile(u))
	}
}

// ResetPassword replaces an identity's password.
// @Summary Reset password
// @Description Replace another identity's password without the current one
// @Tags admin
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body ResetPasswordInput true "New password"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /admin/users/{username}/password [put]
// @Security Bearer
func ResetPassword(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ResetPasswordInput](c)
		if input == nil {
			return err
		}
		caller, _ := middleware.CurrentUser(c)
		if err = userSvc.ResetPassword(c.UserContext(), caller, c.Params("username"), input.NewPassword); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't reset password", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Password reset", nil)
	}
}

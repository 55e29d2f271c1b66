// Package auth exposes the login endpoint that exchanges credentials for
// a JWT access token.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	authsvc "github.com/amirasaad/currency-converter/pkg/service/auth"
	"github.com/amirasaad/currency-converter/webapi/common"
)

// Routes registers the auth endpoints.
func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/login", Login(authSvc))
}

// Login authenticates a user and returns a JWT access token.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}

		user, err := authSvc.Login(c.UserContext(), input.Username, input.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				return common.ProblemDetailsJSON(c, "Invalid username or password", err, fiber.StatusUnauthorized)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, fiber.StatusInternalServerError)
		}

		token, err := authSvc.GenerateToken(user)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, fiber.StatusInternalServerError)
		}

		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}

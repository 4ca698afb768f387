package controllers

import (
	"codeclub/backend/services"
	"codeclub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}

	user, err := ac.Auth.Register(input)
	if err != nil {
		return utils.Fail(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":        user.ID,
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}

	identifier := input.Username
	if identifier == "" {
		identifier = input.Email
	}

	pair, err := ac.Auth.Login(identifier, input.Password)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, pair)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}

	pair, err := ac.Auth.Refresh(input.RefreshToken)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, pair)
}

func (ac *AuthController) CheckUsername(c *fiber.Ctx) error {
	taken, err := ac.Auth.UsernameTaken(c.Params("username"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, taken)
}

func (ac *AuthController) CheckEmail(c *fiber.Ctx) error {
	taken, err := ac.Auth.EmailTaken(c.Params("email"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, taken)
}

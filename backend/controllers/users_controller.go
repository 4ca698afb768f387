package controllers

import (
	"codeclub/backend/middleware"
	"codeclub/backend/services"
	"codeclub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type UsersController struct {
	Users *services.UserService
}

func NewUsersController(users *services.UserService) *UsersController {
	return &UsersController{Users: users}
}

func (uc *UsersController) GetProfile(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return utils.Unauthorized(c, "no identity on request")
	}
	user, err := uc.Users.GetUser(identity.UserID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":        user.ID,
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"roles":     user.RoleNames(),
	})
}

func (uc *UsersController) ListUsers(c *fiber.Ctx) error {
	users, err := uc.Users.ListUsers()
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, users)
}

func (uc *UsersController) SetLocked(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	var input struct {
		Locked bool `json:"locked"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if err := uc.Users.SetLocked(id, input.Locked); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (uc *UsersController) AssignRole(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	var input struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if input.Role == "" {
		return utils.BadRequest(c, "role is required")
	}
	if err := uc.Users.AssignRole(id, input.Role); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (uc *UsersController) DeleteUser(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if err := uc.Users.DeleteUser(id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

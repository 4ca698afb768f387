package controllers

import (
	"codeclub/backend/middleware"
	"codeclub/backend/services"
	"codeclub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type BadgesController struct {
	Badges *services.BadgeService
}

func NewBadgesController(badges *services.BadgeService) *BadgesController {
	return &BadgesController{Badges: badges}
}

func (bc *BadgesController) ListBadges(c *fiber.Ctx) error {
	badges, err := bc.Badges.ListBadges()
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, badges)
}

func (bc *BadgesController) CreateBadge(c *fiber.Ctx) error {
	var input services.BadgeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	badge, err := bc.Badges.CreateBadge(input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, badge)
}

func (bc *BadgesController) DeleteBadge(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if err := bc.Badges.DeleteBadge(id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (bc *BadgesController) ListExternalBadges(c *fiber.Ctx) error {
	badges, err := bc.Badges.ListExternalBadges()
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, badges)
}

func (bc *BadgesController) CreateExternalBadge(c *fiber.Ctx) error {
	var input services.BadgeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	badge, err := bc.Badges.CreateExternalBadge(input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, badge)
}

func (bc *BadgesController) MyBadges(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return utils.Unauthorized(c, "no identity on request")
	}
	badges, external, err := bc.Badges.UserBadges(identity.UserID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"badges":         badges,
		"externalBadges": external,
	})
}

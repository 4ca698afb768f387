package controllers

import (
	"codeclub/backend/middleware"
	"codeclub/backend/services"
	"codeclub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type PortfoliosController struct {
	Portfolios *services.PortfolioService
}

func NewPortfoliosController(portfolios *services.PortfolioService) *PortfoliosController {
	return &PortfoliosController{Portfolios: portfolios}
}

func (pc *PortfoliosController) Submit(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return utils.Unauthorized(c, "no identity on request")
	}
	var input services.PortfolioInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	portfolio, err := pc.Portfolios.Submit(identity.UserID, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, portfolio)
}

func (pc *PortfoliosController) ListMine(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return utils.Unauthorized(c, "no identity on request")
	}
	portfolios, err := pc.Portfolios.ListByUser(identity.UserID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, portfolios)
}

func (pc *PortfoliosController) ListPending(c *fiber.Ctx) error {
	portfolios, err := pc.Portfolios.ListPending()
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, portfolios)
}

func (pc *PortfoliosController) Review(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	var input services.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	portfolio, err := pc.Portfolios.Review(id, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, portfolio)
}

package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramUint parses a numeric path parameter.
func paramUint(c *fiber.Ctx, name string) (uint, error) {
	value, err := strconv.Atoi(c.Params(name))
	if err != nil || value <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(value), nil
}

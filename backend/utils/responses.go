package utils

import (
	"errors"
	"log"
	"net/http"

	"codeclub/backend/services"

	"github.com/gofiber/fiber/v2"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusCreated, data)
}

func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func Error(c *fiber.Ctx, status int, message string, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: message,
	}
	if len(details) > 0 {
		response.Details = details[0]
	}
	return c.Status(status).JSON(response)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// Fail translates a typed service error into its HTTP response. This is the
// only place domain errors meet status codes. Persistence failures are logged
// and the client gets a generic message.
func Fail(c *fiber.Ctx, err error) error {
	var (
		validationErr  *services.ValidationError
		authErr        *services.AuthError
		forbiddenErr   *services.ForbiddenError
		notFoundErr    *services.NotFoundError
		conflictErr    *services.ConflictError
		persistenceErr *services.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		if validationErr.Fields != nil {
			return Error(c, fiber.StatusBadRequest, validationErr.Msg, validationErr.Fields)
		}
		return Error(c, fiber.StatusBadRequest, validationErr.Msg)
	case errors.As(err, &authErr):
		return Error(c, fiber.StatusUnauthorized, authErr.Msg)
	case errors.As(err, &forbiddenErr):
		return Error(c, fiber.StatusForbidden, forbiddenErr.Msg)
	case errors.As(err, &notFoundErr):
		return Error(c, fiber.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		return Error(c, fiber.StatusConflict, conflictErr.Msg)
	case errors.As(err, &persistenceErr):
		log.Printf("persistence error: %v", persistenceErr)
		return Error(c, fiber.StatusInternalServerError, "internal server error")
	default:
		log.Printf("unexpected error: %v", err)
		return Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}

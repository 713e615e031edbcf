package controller

import (
	"errors"

	"medassist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// statusOf maps domain errors to HTTP errors; anything else falls through to the 500 handler.
func statusOf(err error) error {
	switch {
	case errors.Is(err, service.ErrUserExists):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrNoHistory):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidPage),
		errors.Is(err, service.ErrNotPDF):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}

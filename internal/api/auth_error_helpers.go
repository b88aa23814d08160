package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/splitday/internal/services"
)

func isUserNotFound(err error) bool {
	return errors.Is(err, services.ErrUserNotFound)
}

func registerAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDisplayNameInvalid):
		return apiError(c, fiber.StatusBadRequest, "name must be 2 to 50 characters")
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid email address")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "password must be at least 6 characters")
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusConflict, "user already exists")
	default:
		logrus.WithError(err).Error("register account")
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}
}

func passwordChangeAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPasswordChangeInvalidInput):
		return apiError(c, fiber.StatusBadRequest, "current and new password are required")
	case errors.Is(err, services.ErrInvalidCurrentPassword):
		return apiError(c, fiber.StatusUnauthorized, "invalid current password")
	case errors.Is(err, services.ErrNewPasswordMustDiffer):
		return apiError(c, fiber.StatusBadRequest, "new password must differ from the current one")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "password must be at least 6 characters")
	case errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	default:
		logrus.WithError(err).Error("change password")
		return apiError(c, fiber.StatusInternalServerError, "failed to update password")
	}
}

func deleteAccountAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCurrentPassword):
		return apiError(c, fiber.StatusUnauthorized, "invalid password")
	case errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	default:
		logrus.WithError(err).Error("delete account")
		return apiError(c, fiber.StatusInternalServerError, "failed to delete account")
	}
}

package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/splitday/internal/services"
)

func exerciseAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrExerciseInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid exercise")
	case errors.Is(err, services.ErrExerciseNotFound):
		return apiError(c, fiber.StatusNotFound, "exercise not found")
	case errors.Is(err, services.ErrExerciseNameTaken):
		return apiError(c, fiber.StatusConflict, "exercise with this name already exists")
	case errors.Is(err, services.ErrExerciseInUse):
		return apiError(c, fiber.StatusConflict, "exercise is used by recorded sets")
	default:
		logrus.WithError(err).WithField("path", c.Path()).Error("exercise request failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to process exercise")
	}
}

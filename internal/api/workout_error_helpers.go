package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/splitday/internal/services"
)

// workoutAPIError maps engine errors to statuses. Foreign days and sets carry
// ErrNotOwned next to their not-found sentinel and render as plain 404s.
func workoutAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidSplitKey):
		return apiError(c, fiber.StatusBadRequest, "invalid split key")
	case errors.Is(err, services.ErrNoExercisesForSplit):
		return apiError(c, fiber.StatusBadRequest, "no exercises found for split")
	case errors.Is(err, services.ErrNoValidExercises):
		return apiError(c, fiber.StatusBadRequest, "no valid exercises found")
	case errors.Is(err, services.ErrInvalidSetValues):
		return apiError(c, fiber.StatusBadRequest, "invalid set values")
	case errors.Is(err, services.ErrInvalidSetIndex):
		return apiError(c, fiber.StatusBadRequest, "set index must be at least 1")
	case errors.Is(err, services.ErrInvalidWeightUnit):
		return apiError(c, fiber.StatusBadRequest, "unit must be lbs or kg")
	case errors.Is(err, services.ErrHistoryStartDateInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid start date")
	case errors.Is(err, services.ErrHistoryEndDateInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid end date")
	case errors.Is(err, services.ErrHistoryRangeInvalid):
		return apiError(c, fiber.StatusBadRequest, "end date must not be before start date")
	case errors.Is(err, services.ErrWorkoutNotFound):
		return apiError(c, fiber.StatusNotFound, "workout not found")
	case errors.Is(err, services.ErrSetRecordNotFound):
		return apiError(c, fiber.StatusNotFound, "set record not found")
	case errors.Is(err, services.ErrExerciseNotFound):
		return apiError(c, fiber.StatusNotFound, "exercise not found")
	case errors.Is(err, services.ErrWorkoutDayExists):
		return apiError(c, fiber.StatusConflict, "workout day already exists")
	default:
		logrus.WithError(err).WithField("path", c.Path()).Error("workout request failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to process workout")
	}
}

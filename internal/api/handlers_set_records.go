package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/splitday/internal/metrics"
	"github.com/terraincognita07/splitday/internal/services"
)

func (handler *Handler) ListCompletedSets(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	sets, err := handler.statsService.CompletedSets(user.ID)
	if err != nil {
		return workoutAPIError(c, err)
	}
	return c.JSON(sets)
}

func (handler *Handler) LogSet(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := logSetInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.ActualWeight == nil || input.ActualReps == nil {
		return apiError(c, fiber.StatusBadRequest, "actual weight and reps are required")
	}

	result, err := handler.workoutService.LogSet(user.ID, c.Params("id"), *input.ActualWeight, *input.ActualReps, input.SecondsRest)
	if err != nil {
		return workoutAPIError(c, err)
	}
	handler.recordSetWrite(result)
	return c.JSON(result)
}

func (handler *Handler) UpsertSetRecord(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := setRecordInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.WorkoutDayID == "" || input.ExerciseID == "" {
		return apiError(c, fiber.StatusBadRequest, "workoutDayId and exerciseId are required")
	}

	result, err := handler.workoutService.UpsertSetRecord(user.ID, services.SetRecordInput{
		WorkoutDayID:  input.WorkoutDayID,
		ExerciseID:    input.ExerciseID,
		SetIndex:      input.SetIndex,
		PlannedWeight: input.PlannedWeight,
		PlannedReps:   input.PlannedReps,
		ActualWeight:  input.ActualWeight,
		ActualReps:    input.ActualReps,
		SecondsRest:   input.SecondsRest,
	})
	if err != nil {
		return workoutAPIError(c, err)
	}
	handler.recordSetWrite(result)
	return c.JSON(result)
}

func (handler *Handler) recordSetWrite(result services.SetLogResult) {
	if result.Set.IsCompleted() {
		handler.metrics.SetLogged()
	}
	if result.WorkoutCompleted {
		handler.metrics.WorkoutCompleted(metrics.CompletionAuto)
	}
}

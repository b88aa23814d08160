package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/splitday/internal/metrics"
	"github.com/terraincognita07/splitday/internal/models"
	"github.com/terraincognita07/splitday/internal/services"
)

func (handler *Handler) ListSplits(c *fiber.Ctx) error {
	return c.JSON(services.ListSplits())
}

func (handler *Handler) TodayWorkout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := handler.workoutService.TodayWorkout(user.ID)
	if err != nil {
		return workoutAPIError(c, err)
	}
	return c.JSON(services.SummarizeWorkout(day))
}

func (handler *Handler) StartWorkout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := startWorkoutInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	day, created, err := handler.workoutService.StartWorkout(user.ID, input.SplitKey)
	if err != nil {
		return workoutAPIError(c, err)
	}
	return handler.respondStartedWorkout(c, day, created, metrics.StartKindSplit)
}

func (handler *Handler) CreateCustomWorkout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := customWorkoutInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if len(input.ExerciseIDs) == 0 {
		return apiError(c, fiber.StatusBadRequest, "at least one exercise is required")
	}

	day, created, err := handler.workoutService.CreateCustomWorkout(user.ID, input.ExerciseIDs, input.CustomSets)
	if err != nil {
		return workoutAPIError(c, err)
	}
	return handler.respondStartedWorkout(c, day, created, metrics.StartKindCustom)
}

func (handler *Handler) CreateRestDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, created, err := handler.workoutService.CreateRestDay(user.ID)
	if err != nil {
		return workoutAPIError(c, err)
	}
	if created {
		handler.metrics.WorkoutStarted(metrics.StartKindRestDay)
	}
	return c.JSON(services.SummarizeWorkout(day))
}

func (handler *Handler) CreateWorkoutDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := workoutDayInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	date, err := services.ParseDay(strings.TrimSpace(input.Date), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	day, err := handler.workoutService.CreateWorkoutDay(user.ID, date, input.IsRestDay)
	if err != nil {
		return workoutAPIError(c, err)
	}
	handler.metrics.WorkoutStarted(metrics.StartKindManual)
	return c.Status(fiber.StatusCreated).JSON(services.SummarizeWorkout(day))
}

func (handler *Handler) CompleteWorkout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, changed, err := handler.workoutService.CompleteWorkout(user.ID, c.Params("id"))
	if err != nil {
		return workoutAPIError(c, err)
	}
	if changed {
		handler.metrics.WorkoutCompleted(metrics.CompletionManual)
	}
	return c.JSON(services.SummarizeWorkout(day))
}

func (handler *Handler) UncompleteWorkout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := handler.workoutService.UncompleteWorkout(user.ID, c.Params("id"))
	if err != nil {
		return workoutAPIError(c, err)
	}
	return c.JSON(services.SummarizeWorkout(day))
}

func (handler *Handler) DeleteWorkout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.workoutService.DeleteWorkout(user.ID, c.Params("id")); err != nil {
		return workoutAPIError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) WorkoutHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	start, end, err := services.ParseHistoryRange(c.Query("startDate"), c.Query("endDate"), handler.location)
	if err != nil {
		return workoutAPIError(c, err)
	}
	days, err := handler.statsService.History(user.ID, start, end)
	if err != nil {
		return workoutAPIError(c, err)
	}
	return c.JSON(services.SummarizeWorkouts(days))
}

func (handler *Handler) WorkoutStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.statsService.Stats(user.ID)
	if err != nil {
		return workoutAPIError(c, err)
	}
	return c.JSON(stats)
}

func (handler *Handler) ProgressReport(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	start, end, err := services.ParseHistoryRange(c.Query("startDate"), c.Query("endDate"), handler.location)
	if err != nil {
		return workoutAPIError(c, err)
	}
	unit, err := services.ParseWeightUnit(c.Query("unit"))
	if err != nil {
		return workoutAPIError(c, err)
	}

	report, err := handler.statsService.ProgressReport(user.ID, start, end, unit)
	if err != nil {
		return workoutAPIError(c, err)
	}
	return c.JSON(report)
}

func (handler *Handler) respondStartedWorkout(c *fiber.Ctx, day models.WorkoutDay, created bool, kind string) error {
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
		handler.metrics.WorkoutStarted(kind)
	}
	return c.Status(status).JSON(services.SummarizeWorkout(day))
}

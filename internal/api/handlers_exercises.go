package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/splitday/internal/services"
)

func (handler *Handler) ListExercises(c *fiber.Ctx) error {
	listing, err := handler.exerciseService.List(c.Query("muscleGroup"), c.Query("search"))
	if err != nil {
		return exerciseAPIError(c, err)
	}
	return c.JSON(listing)
}

func (handler *Handler) PopularExercises(c *fiber.Ctx) error {
	limit, ok := queryLimit(c, "limit")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid limit")
	}
	exercises, err := handler.exerciseService.Popular(limit)
	if err != nil {
		return exerciseAPIError(c, err)
	}
	return c.JSON(exercises)
}

func (handler *Handler) GetExercise(c *fiber.Ctx) error {
	exercise, err := handler.exerciseService.Get(c.Params("id"))
	if err != nil {
		return exerciseAPIError(c, err)
	}
	return c.JSON(exercise)
}

func (handler *Handler) CreateExercise(c *fiber.Ctx) error {
	input := exerciseInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	exercise, err := handler.exerciseService.Create(toExerciseInput(input))
	if err != nil {
		return exerciseAPIError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exercise)
}

func (handler *Handler) UpdateExercise(c *fiber.Ctx) error {
	input := exerciseInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	exercise, err := handler.exerciseService.Update(c.Params("id"), toExerciseInput(input))
	if err != nil {
		return exerciseAPIError(c, err)
	}
	return c.JSON(exercise)
}

func (handler *Handler) DeleteExercise(c *fiber.Ctx) error {
	if err := handler.exerciseService.Delete(c.Params("id")); err != nil {
		return exerciseAPIError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toExerciseInput(input exerciseInput) services.ExerciseInput {
	return services.ExerciseInput{
		Name:        input.Name,
		MuscleGroup: input.MuscleGroup,
		DefaultSets: input.DefaultSets,
		DefaultReps: input.DefaultReps,
	}
}

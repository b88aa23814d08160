package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/refresh", handler.Refresh)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthAllowingPasswordChange, handler.Me)
	auth.Post("/change-password", handler.AuthAllowingPasswordChange, handler.ChangePassword)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	exercises := v1.Group("/exercises", handler.AuthRequired)
	exercises.Get("/", handler.ListExercises)
	exercises.Get("/popular", handler.PopularExercises)
	exercises.Get("/:id", handler.GetExercise)
	exercises.Post("/", handler.CreateExercise)
	exercises.Put("/:id", handler.UpdateExercise)
	exercises.Delete("/:id", handler.DeleteExercise)

	workouts := v1.Group("/workouts", handler.AuthRequired)
	workouts.Get("/splits", handler.ListSplits)
	workouts.Get("/today", handler.TodayWorkout)
	workouts.Get("/history", handler.WorkoutHistory)
	workouts.Get("/stats", handler.WorkoutStats)
	workouts.Get("/progress", handler.ProgressReport)
	workouts.Post("/start", handler.StartWorkout)
	workouts.Post("/custom", handler.CreateCustomWorkout)
	workouts.Post("/rest-day", handler.CreateRestDay)
	workouts.Patch("/:id/complete", handler.CompleteWorkout)
	workouts.Patch("/:id/uncomplete", handler.UncompleteWorkout)
	workouts.Delete("/:id", handler.DeleteWorkout)

	v1.Post("/workout-days", handler.AuthRequired, handler.CreateWorkoutDay)

	sets := v1.Group("/set-records", handler.AuthRequired)
	sets.Get("/", handler.ListCompletedSets)
	sets.Post("/", handler.UpsertSetRecord)
	sets.Patch("/:id", handler.LogSet)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

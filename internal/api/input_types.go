package api

import "github.com/terraincognita07/splitday/internal/models"

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type deleteAccountInput struct {
	Password string `json:"password"`
}

type exerciseInput struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
	DefaultSets int    `json:"defaultSets"`
	DefaultReps int    `json:"defaultReps"`
}

type startWorkoutInput struct {
	SplitKey string `json:"splitKey"`
}

type customWorkoutInput struct {
	ExerciseIDs []string       `json:"exerciseIds"`
	CustomSets  map[string]int `json:"customSets"`
}

type workoutDayInput struct {
	Date      string `json:"date"`
	IsRestDay bool   `json:"isRestDay"`
}

type logSetInput struct {
	ActualWeight *float64 `json:"actualWeight"`
	ActualReps   *int     `json:"actualReps"`
	SecondsRest  *int     `json:"secondsRest"`
}

type setRecordInput struct {
	WorkoutDayID  string   `json:"workoutDayId"`
	ExerciseID    string   `json:"exerciseId"`
	SetIndex      int      `json:"setIndex"`
	PlannedWeight float64  `json:"plannedWeight"`
	PlannedReps   int      `json:"plannedReps"`
	ActualWeight  *float64 `json:"actualWeight"`
	ActualReps    *int     `json:"actualReps"`
	SecondsRest   *int     `json:"secondsRest"`
}

type authResponse struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"accessToken"`
}

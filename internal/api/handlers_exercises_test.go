package api

import (
	"net/http"
	"testing"

	"github.com/terraincognita07/splitday/internal/services"
)

func TestExerciseCRUD(t *testing.T) {
	app, _, _ := newTestApp(t)
	session := registerTestUser(t, app, "lifter@example.com")

	bench := createTestExercise(t, app, session.AccessToken, "Bench Press", "Chest")
	if bench.DefaultSets != 3 {
		t.Fatalf("expected default 3 sets, got %d", bench.DefaultSets)
	}
	createTestExercise(t, app, session.AccessToken, "Squats", "Legs")

	response := doJSON(t, app, http.MethodPost, "/api/v1/exercises", session.AccessToken, exerciseInput{Name: "Bench Press", MuscleGroup: "Chest"})
	expectStatus(t, response, http.StatusConflict)

	response = doJSON(t, app, http.MethodPost, "/api/v1/exercises", session.AccessToken, exerciseInput{Name: "Plank", MuscleGroup: "Core", DefaultSets: 11})
	expectStatus(t, response, http.StatusBadRequest)

	response = doJSON(t, app, http.MethodGet, "/api/v1/exercises?muscleGroup=Chest", session.AccessToken, nil)
	expectStatus(t, response, http.StatusOK)
	listing := services.ExerciseListing{}
	decodeJSON(t, response, &listing)
	if len(listing.Exercises) != 1 || listing.Exercises[0].ID != bench.ID {
		t.Fatalf("unexpected filtered listing %+v", listing.Exercises)
	}

	response = doJSON(t, app, http.MethodPut, "/api/v1/exercises/"+bench.ID, session.AccessToken, exerciseInput{Name: "Squats", MuscleGroup: "Chest"})
	expectStatus(t, response, http.StatusConflict)

	response = doJSON(t, app, http.MethodPut, "/api/v1/exercises/"+bench.ID, session.AccessToken, exerciseInput{Name: "Flat Bench Press", MuscleGroup: "Chest", DefaultSets: 5, DefaultReps: 5})
	expectStatus(t, response, http.StatusOK)
	updated := testExercise{}
	decodeJSON(t, response, &updated)
	if updated.Name != "Flat Bench Press" || updated.DefaultSets != 5 {
		t.Fatalf("unexpected updated exercise %+v", updated)
	}

	response = doJSON(t, app, http.MethodGet, "/api/v1/exercises/missing", session.AccessToken, nil)
	expectStatus(t, response, http.StatusNotFound)
}

func TestDeleteExerciseBlockedWhileReferenced(t *testing.T) {
	app, _, _ := newTestApp(t)
	session := registerTestUser(t, app, "lifter@example.com")
	bench := createTestExercise(t, app, session.AccessToken, "Bench Press", "Chest")
	unused := createTestExercise(t, app, session.AccessToken, "Cable Flyes", "Chest")

	response := doJSON(t, app, http.MethodPost, "/api/v1/workouts/custom", session.AccessToken, customWorkoutInput{
		ExerciseIDs: []string{bench.ID},
		CustomSets:  map[string]int{bench.ID: 2},
	})
	expectStatus(t, response, http.StatusCreated)
	workout := testWorkout{}
	decodeJSON(t, response, &workout)
	if workout.TotalSets != 2 {
		t.Fatalf("expected two custom sets, got %d", workout.TotalSets)
	}

	response = doJSON(t, app, http.MethodDelete, "/api/v1/exercises/"+bench.ID, session.AccessToken, nil)
	expectStatus(t, response, http.StatusConflict)

	response = doJSON(t, app, http.MethodDelete, "/api/v1/exercises/"+unused.ID, session.AccessToken, nil)
	expectStatus(t, response, http.StatusNoContent)

	response = doJSON(t, app, http.MethodGet, "/api/v1/exercises/popular?limit=5", session.AccessToken, nil)
	expectStatus(t, response, http.StatusOK)
	popular := []struct {
		ID       string `json:"id"`
		SetCount int64  `json:"setCount"`
	}{}
	decodeJSON(t, response, &popular)
	if len(popular) == 0 || popular[0].ID != bench.ID || popular[0].SetCount != 2 {
		t.Fatalf("unexpected popular exercises %+v", popular)
	}

	response = doJSON(t, app, http.MethodGet, "/api/v1/exercises/popular?limit=zero", session.AccessToken, nil)
	expectStatus(t, response, http.StatusBadRequest)
}

func TestCustomWorkoutRequiresExercises(t *testing.T) {
	app, _, _ := newTestApp(t)
	session := registerTestUser(t, app, "lifter@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/v1/workouts/custom", session.AccessToken, customWorkoutInput{})
	expectStatus(t, response, http.StatusBadRequest)

	response = doJSON(t, app, http.MethodPost, "/api/v1/workouts/custom", session.AccessToken, customWorkoutInput{ExerciseIDs: []string{"missing"}})
	expectStatus(t, response, http.StatusBadRequest)
	if message := readAPIError(t, response.Body); message != "no valid exercises found" {
		t.Fatalf("expected no valid exercises, got %q", message)
	}
}

func TestHealthAndSplits(t *testing.T) {
	app, _, _ := newTestApp(t)
	session := registerTestUser(t, app, "lifter@example.com")

	response := doJSON(t, app, http.MethodGet, "/healthz", "", nil)
	expectStatus(t, response, http.StatusOK)

	response = doJSON(t, app, http.MethodGet, "/api/v1/workouts/splits", session.AccessToken, nil)
	expectStatus(t, response, http.StatusOK)
	splits := []services.Split{}
	decodeJSON(t, response, &splits)
	if len(splits) != 3 || splits[0].Key != services.SplitChestTriceps {
		t.Fatalf("unexpected splits %+v", splits)
	}
}

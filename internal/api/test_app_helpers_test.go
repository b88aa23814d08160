package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/splitday/internal/db"
	"github.com/terraincognita07/splitday/internal/metrics"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type testSession struct {
	UserID        string
	AccessToken   string
	RefreshCookie string
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *Handler) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "splitday-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	manager, _ := metrics.NewTestManager()
	handler, err := NewHandler(database, Options{
		SecretKey: testSecretKey,
		Location:  time.UTC,
		Metrics:   manager,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database, handler
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, accessToken string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		request.Header.Set("Authorization", "Bearer "+accessToken)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func expectStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	bytes, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(bytes, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func registerTestUser(t *testing.T, app *fiber.App, email string) testSession {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", registerInput{
		Name:     "Test Lifter",
		Email:    email,
		Password: "barbell",
	})
	expectStatus(t, response, http.StatusCreated)
	return decodeSession(t, response)
}

func decodeSession(t *testing.T, response *http.Response) testSession {
	t.Helper()

	payload := struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
	}{}
	decodeJSON(t, response, &payload)
	if payload.AccessToken == "" || payload.User.ID == "" {
		t.Fatalf("expected user and access token, got %+v", payload)
	}

	session := testSession{UserID: payload.User.ID, AccessToken: payload.AccessToken}
	if cookie := responseCookie(response.Cookies(), refreshCookieName); cookie != nil {
		session.RefreshCookie = cookie.Name + "=" + cookie.Value
	}
	return session
}

type testExercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
	DefaultSets int    `json:"defaultSets"`
}

func createTestExercise(t *testing.T, app *fiber.App, accessToken string, name string, muscleGroup string) testExercise {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/v1/exercises", accessToken, exerciseInput{
		Name:        name,
		MuscleGroup: muscleGroup,
	})
	expectStatus(t, response, http.StatusCreated)

	exercise := testExercise{}
	decodeJSON(t, response, &exercise)
	return exercise
}

// seedChestTricepsCatalog creates three Chest and two Triceps exercises with
// the default three sets each.
func seedChestTricepsCatalog(t *testing.T, app *fiber.App, accessToken string) []testExercise {
	t.Helper()

	return []testExercise{
		createTestExercise(t, app, accessToken, "Bench Press", "Chest"),
		createTestExercise(t, app, accessToken, "Dumbbell Flyes", "Chest"),
		createTestExercise(t, app, accessToken, "Incline Press", "Chest"),
		createTestExercise(t, app, accessToken, "Skull Crushers", "Triceps"),
		createTestExercise(t, app, accessToken, "Tricep Pushdowns", "Triceps"),
	}
}

type testWorkout struct {
	ID                   string         `json:"id"`
	State                string         `json:"state"`
	Completed            bool           `json:"completed"`
	IsRestDay            bool           `json:"isRestDay"`
	SplitName            string         `json:"splitName"`
	TotalSets            int            `json:"totalSets"`
	CompletedSets        int            `json:"completedSets"`
	CompletionPercentage int            `json:"completionPercentage"`
	Sets                 []testSetEntry `json:"sets"`
}

type testSetEntry struct {
	ID           string   `json:"id"`
	ExerciseID   string   `json:"exerciseId"`
	SetIndex     int      `json:"setIndex"`
	ActualWeight *float64 `json:"actualWeight"`
	ActualReps   *int     `json:"actualReps"`
}

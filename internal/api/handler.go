package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/splitday/internal/db"
	"github.com/terraincognita07/splitday/internal/metrics"
	"github.com/terraincognita07/splitday/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

type Options struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	Metrics      *metrics.Manager
}

type Handler struct {
	secretKey     []byte
	location      *time.Location
	cookieSecure  bool
	accessTTL     time.Duration
	refreshTTL    time.Duration
	metrics       *metrics.Manager
	loginThrottle *loginThrottle
	now           func() time.Time

	repositories    *db.Repositories
	authService     *services.AuthService
	exerciseService *services.ExerciseService
	workoutService  *services.WorkoutService
	statsService    *services.StatsService
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.AccessTTL <= 0 {
		options.AccessTTL = defaultAccessTokenTTL
	}
	if options.RefreshTTL <= 0 {
		options.RefreshTTL = defaultRefreshTokenTTL
	}

	handler := &Handler{
		secretKey:     []byte(options.SecretKey),
		location:      options.Location,
		cookieSecure:  options.CookieSecure,
		accessTTL:     options.AccessTTL,
		refreshTTL:    options.RefreshTTL,
		metrics:       options.Metrics,
		loginThrottle: newLoginThrottle(loginAttemptLimit, loginAttemptWindow),
		now:           time.Now,
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.exerciseService = services.NewExerciseService(handler.repositories.Exercises)
	handler.workoutService = services.NewWorkoutService(
		handler.repositories.WorkoutDays,
		handler.repositories.SetRecords,
		handler.repositories.Exercises,
		handler.location,
	)
	handler.statsService = services.NewStatsService(
		handler.repositories.WorkoutDays,
		handler.repositories.SetRecords,
		handler.location,
	)
	return handler
}

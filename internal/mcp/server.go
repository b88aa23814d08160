package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/terraincognita07/splitday/internal/models"
	"github.com/terraincognita07/splitday/internal/services"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext returns the user the session is bound to.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

type TodayWorkoutSource interface {
	TodayWorkout(userID string) (models.WorkoutDay, error)
}

type StatsSource interface {
	Stats(userID string) (services.WorkoutStats, error)
	History(userID string, start *time.Time, end *time.Time) ([]models.WorkoutDay, error)
	ProgressReport(userID string, start *time.Time, end *time.Time, unit services.WeightUnit) (services.ProgressReport, error)
}

// New creates an MCP server exposing read-only workout tools.
func New(workouts TodayWorkoutSource, stats StatsSource, location *time.Location, version string) *server.MCPServer {
	if location == nil {
		location = time.UTC
	}
	s := server.NewMCPServer("splitday", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("splitday workout tracker. Read today's workout, workout history, aggregate stats and per-exercise progress. All data is scoped to the configured user."),
	)

	h := &handlers{workouts: workouts, stats: stats, location: location}
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkoutStats, Handler: h.getWorkoutStats},
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetTodayWorkout, Handler: h.getTodayWorkout},
		server.ServerTool{Tool: toolGetProgressReport, Handler: h.getProgressReport},
	)
	return s
}

// ServeStdio runs s over stdin/stdout with every request bound to userID.
func ServeStdio(s *server.MCPServer, userID string) error {
	return server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return WithUserID(ctx, userID)
	}))
}

type handlers struct {
	workouts TodayWorkoutSource
	stats    StatsSource
	location *time.Location
}

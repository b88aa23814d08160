package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/splitday/internal/services"
)

var toolGetWorkoutStats = mcp.NewTool("get_workout_stats",
	mcp.WithDescription("Aggregate workout stats: total completed workouts (rest days included), completed sets, current streak in days, and personal records."),
)

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("Workout days newest first with their sets, split name and completion percentage. The range only applies when both start and end are given."),
	mcp.WithString("start", mcp.Description("First day, YYYY-MM-DD (inclusive).")),
	mcp.WithString("end", mcp.Description("Last day, YYYY-MM-DD (inclusive).")),
)

var toolGetTodayWorkout = mcp.NewTool("get_today_workout",
	mcp.WithDescription("Today's workout day with its sets, or a note that nothing is tracked today."),
)

var toolGetProgressReport = mcp.NewTool("get_progress_report",
	mcp.WithDescription("Per-exercise best set (Epley one-rep max), volume and progression, plus volume per muscle group."),
	mcp.WithString("start", mcp.Description("First day, YYYY-MM-DD (inclusive).")),
	mcp.WithString("end", mcp.Description("Last day, YYYY-MM-DD (inclusive).")),
	mcp.WithString("unit", mcp.Description("Weight unit for the report. Defaults to lbs."), mcp.Enum("lbs", "kg")),
)

func (h *handlers) getWorkoutStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError("no user bound to this session"), nil
	}

	stats, err := h.stats.Stats(userID)
	if err != nil {
		logrus.WithError(err).Error("mcp get_workout_stats")
		return mcp.NewToolResultError("query failed"), nil
	}
	return jsonResult(stats)
}

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError("no user bound to this session"), nil
	}

	start, end, err := services.ParseHistoryRange(req.GetString("start", ""), req.GetString("end", ""), h.location)
	if err != nil {
		return mcp.NewToolResultError("invalid date range: " + err.Error()), nil
	}

	days, err := h.stats.History(userID, start, end)
	if err != nil {
		logrus.WithError(err).Error("mcp get_workout_history")
		return mcp.NewToolResultError("query failed"), nil
	}
	return jsonResult(services.SummarizeWorkouts(days))
}

func (h *handlers) getTodayWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError("no user bound to this session"), nil
	}

	day, err := h.workouts.TodayWorkout(userID)
	if errors.Is(err, services.ErrWorkoutNotFound) {
		return mcp.NewToolResultText("No workout tracked today."), nil
	}
	if err != nil {
		logrus.WithError(err).Error("mcp get_today_workout")
		return mcp.NewToolResultError("query failed"), nil
	}
	return jsonResult(services.SummarizeWorkout(day))
}

func (h *handlers) getProgressReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError("no user bound to this session"), nil
	}

	start, end, err := services.ParseHistoryRange(req.GetString("start", ""), req.GetString("end", ""), h.location)
	if err != nil {
		return mcp.NewToolResultError("invalid date range: " + err.Error()), nil
	}
	unit, err := services.ParseWeightUnit(req.GetString("unit", ""))
	if err != nil {
		return mcp.NewToolResultError("unit must be lbs or kg"), nil
	}

	report, err := h.stats.ProgressReport(userID, start, end, unit)
	if err != nil {
		logrus.WithError(err).Error("mcp get_progress_report")
		return mcp.NewToolResultError("query failed"), nil
	}
	return jsonResult(report)
}

func jsonResult(value any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(value)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

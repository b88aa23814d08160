package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/splitday/internal/models"
)

const streakLookback = 30

type StatsWorkoutDayReader interface {
	ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.WorkoutDay, error)
	ListRecentByUser(userID string, limit int) ([]models.WorkoutDay, error)
	CountByUserAndStates(userID string, states ...models.WorkoutState) (int64, error)
}

type StatsSetReader interface {
	CountCompletedByUser(userID string) (int64, error)
	ListCompletedByUser(userID string) ([]models.SetRecord, error)
}

type WorkoutStats struct {
	TotalWorkouts      int64 `json:"totalWorkouts"`
	TotalSetsCompleted int64 `json:"totalSetsCompleted"`
	CurrentStreak      int   `json:"currentStreak"`
	// PersonalRecords mirrors TotalWorkouts. It is not a count of best-set improvements.
	PersonalRecords int64 `json:"personalRecords"`
}

type StatsService struct {
	days     StatsWorkoutDayReader
	sets     StatsSetReader
	location *time.Location
	now      func() time.Time
}

func NewStatsService(days StatsWorkoutDayReader, sets StatsSetReader, location *time.Location) *StatsService {
	if location == nil {
		location = time.UTC
	}
	return &StatsService{
		days:     days,
		sets:     sets,
		location: location,
		now:      time.Now,
	}
}

// History returns the user's days newest first. The range applies only when
// both bounds are given and is inclusive of both dates.
func (service *StatsService) History(userID string, start *time.Time, end *time.Time) ([]models.WorkoutDay, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if start != nil && end != nil {
		rangeStart, _ := DayRange(*start, service.location)
		_, rangeEnd := DayRange(*end, service.location)
		fromStart = &rangeStart
		toEnd = &rangeEnd
	}

	days, err := service.days.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}
	for index := range days {
		SortSetsForDisplay(days[index].Sets)
	}
	return days, nil
}

func (service *StatsService) Stats(userID string) (WorkoutStats, error) {
	totalWorkouts, err := service.days.CountByUserAndStates(userID, models.WorkoutStateCompleted, models.WorkoutStateRestDay)
	if err != nil {
		return WorkoutStats{}, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}

	totalSets, err := service.sets.CountCompletedByUser(userID)
	if err != nil {
		return WorkoutStats{}, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}

	recent, err := service.days.ListRecentByUser(userID, streakLookback)
	if err != nil {
		return WorkoutStats{}, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}

	return WorkoutStats{
		TotalWorkouts:      totalWorkouts,
		TotalSetsCompleted: totalSets,
		CurrentStreak:      CurrentStreak(recent, service.now(), service.location),
		PersonalRecords:    totalWorkouts,
	}, nil
}

func (service *StatsService) CompletedSets(userID string) ([]models.SetRecord, error) {
	records, err := service.sets.ListCompletedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}
	return records, nil
}

func (service *StatsService) ProgressReport(userID string, start *time.Time, end *time.Time, unit WeightUnit) (ProgressReport, error) {
	days, err := service.History(userID, start, end)
	if err != nil {
		return ProgressReport{}, err
	}
	return BuildProgressReport(days, unit, service.location), nil
}

// CurrentStreak counts consecutive completed days in days, which must be
// ordered newest first. The run is anchored at today, or at the newest day
// when nothing has been tracked today, and stops at the first gap or
// incomplete day.
func CurrentStreak(days []models.WorkoutDay, now time.Time, location *time.Location) int {
	if len(days) > streakLookback {
		days = days[:streakLookback]
	}

	anchor := -1
	streak := 0
	for _, day := range days {
		offset := DaysBetween(now, day.Date, location)
		if offset < 0 {
			continue
		}
		if anchor < 0 {
			anchor = offset
		}
		if offset != anchor+streak || !day.State.IsCompleted() {
			break
		}
		streak++
	}
	return streak
}

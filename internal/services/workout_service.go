package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/terraincognita07/splitday/internal/models"
)

var (
	ErrNoExercisesForSplit  = errors.New("no exercises found for split")
	ErrNoValidExercises     = errors.New("no valid exercises found")
	ErrInvalidSetValues     = errors.New("invalid set values")
	ErrInvalidSetIndex      = errors.New("invalid set index")
	ErrWorkoutNotFound      = errors.New("workout not found")
	ErrSetRecordNotFound    = errors.New("set record not found")
	ErrNotOwned             = errors.New("not owned by user")
	ErrWorkoutDayExists     = errors.New("workout day already exists")
	ErrWorkoutLoadFailed    = errors.New("load workout failed")
	ErrWorkoutCreateFailed  = errors.New("create workout failed")
	ErrWorkoutUpdateFailed  = errors.New("update workout failed")
	ErrWorkoutDeleteFailed  = errors.New("delete workout failed")
	ErrSetRecordWriteFailed = errors.New("write set record failed")
	ErrExerciseLoadFailed   = errors.New("load exercises failed")
)

const (
	MinCustomSets = 1
	MaxCustomSets = 10
)

type WorkoutDayRepository interface {
	FindByUserAndDayRange(userID string, dayStart time.Time, dayEnd time.Time) (models.WorkoutDay, bool, error)
	FindByID(dayID string) (models.WorkoutDay, bool, error)
	CreateWithSets(day *models.WorkoutDay, sets []models.SetRecord) error
	UpdateState(dayID string, state models.WorkoutState) error
	DeleteWithSets(dayID string) error
}

type SetRecordRepository interface {
	FindByID(setID string) (models.SetRecord, bool, error)
	FindBySlot(dayID string, exerciseID string, setIndex int) (models.SetRecord, bool, error)
	ListByWorkoutDay(dayID string) ([]models.SetRecord, error)
	UpdateActuals(setID string, actualWeight float64, actualReps int, secondsRest *int) error
	Upsert(record *models.SetRecord) error
}

type WorkoutExerciseCatalog interface {
	ListByMuscleGroup(muscleGroup string, limit int) ([]models.Exercise, error)
	FindByIDs(exerciseIDs []string) ([]models.Exercise, error)
	FindByID(exerciseID string) (models.Exercise, bool, error)
}

// SetLogResult reports the written set and whether the write completed its workout day.
type SetLogResult struct {
	Set              models.SetRecord `json:"set"`
	WorkoutCompleted bool             `json:"workoutCompleted"`
}

type SetRecordInput struct {
	WorkoutDayID  string
	ExerciseID    string
	SetIndex      int
	PlannedWeight float64
	PlannedReps   int
	ActualWeight  *float64
	ActualReps    *int
	SecondsRest   *int
}

type WorkoutService struct {
	days      WorkoutDayRepository
	sets      SetRecordRepository
	exercises WorkoutExerciseCatalog
	location  *time.Location
	now       func() time.Time
}

func NewWorkoutService(days WorkoutDayRepository, sets SetRecordRepository, exercises WorkoutExerciseCatalog, location *time.Location) *WorkoutService {
	if location == nil {
		location = time.UTC
	}
	return &WorkoutService{
		days:      days,
		sets:      sets,
		exercises: exercises,
		location:  location,
		now:       time.Now,
	}
}

func (service *WorkoutService) today() (time.Time, time.Time) {
	return DayRange(service.now(), service.location)
}

func (service *WorkoutService) TodayWorkout(userID string) (models.WorkoutDay, error) {
	dayStart, dayEnd := service.today()
	day, found, err := service.days.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.WorkoutDay{}, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}
	if !found {
		return models.WorkoutDay{}, ErrWorkoutNotFound
	}
	SortSetsForDisplay(day.Sets)
	return day, nil
}

// StartWorkout creates today's workout from a split. An existing workout for
// today is returned unchanged with created=false.
func (service *WorkoutService) StartWorkout(userID string, splitKey string) (models.WorkoutDay, bool, error) {
	split, err := LookupSplit(splitKey)
	if err != nil {
		return models.WorkoutDay{}, false, err
	}

	dayStart, dayEnd := service.today()
	existing, found, err := service.days.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.WorkoutDay{}, false, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}
	if found {
		SortSetsForDisplay(existing.Sets)
		return existing, false, nil
	}

	selected := make([]models.Exercise, 0)
	for _, group := range split.Groups {
		exercises, err := service.exercises.ListByMuscleGroup(group.MuscleGroup, group.MaxExercises)
		if err != nil {
			return models.WorkoutDay{}, false, fmt.Errorf("%w: %w", ErrExerciseLoadFailed, err)
		}
		selected = append(selected, exercises...)
	}
	if len(selected) == 0 {
		return models.WorkoutDay{}, false, ErrNoExercisesForSplit
	}

	return service.createPlannedDay(userID, dayStart, dayEnd, planSets(selected, nil))
}

// CreateCustomWorkout creates today's workout from chosen exercises. customSets
// overrides the per-exercise set count and is clamped to 1..10.
func (service *WorkoutService) CreateCustomWorkout(userID string, exerciseIDs []string, customSets map[string]int) (models.WorkoutDay, bool, error) {
	dayStart, dayEnd := service.today()
	existing, found, err := service.days.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.WorkoutDay{}, false, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}
	if found {
		SortSetsForDisplay(existing.Sets)
		return existing, false, nil
	}

	exercises, err := service.exercises.FindByIDs(uniqueStrings(exerciseIDs))
	if err != nil {
		return models.WorkoutDay{}, false, fmt.Errorf("%w: %w", ErrExerciseLoadFailed, err)
	}
	if len(exercises) == 0 {
		return models.WorkoutDay{}, false, ErrNoValidExercises
	}

	return service.createPlannedDay(userID, dayStart, dayEnd, planSets(exercises, customSets))
}

func (service *WorkoutService) createPlannedDay(userID string, dayStart time.Time, dayEnd time.Time, sets []models.SetRecord) (models.WorkoutDay, bool, error) {
	day := models.WorkoutDay{
		UserID: userID,
		Date:   dayStart,
		State:  models.WorkoutStateActive,
	}
	if err := service.days.CreateWithSets(&day, sets); err != nil {
		// A concurrent request may have created the day first.
		existing, found, findErr := service.days.FindByUserAndDayRange(userID, dayStart, dayEnd)
		if findErr == nil && found {
			SortSetsForDisplay(existing.Sets)
			return existing, false, nil
		}
		return models.WorkoutDay{}, false, fmt.Errorf("%w: %w", ErrWorkoutCreateFailed, err)
	}

	day.Sets = sets
	SortSetsForDisplay(day.Sets)
	return day, true, nil
}

func planSets(exercises []models.Exercise, customSets map[string]int) []models.SetRecord {
	sets := make([]models.SetRecord, 0)
	for index := range exercises {
		exercise := exercises[index]
		setCount := exercise.DefaultSets
		if custom, ok := customSets[exercise.ID]; ok {
			setCount = clampCustomSets(custom)
		}
		for setIndex := 1; setIndex <= setCount; setIndex++ {
			sets = append(sets, models.SetRecord{
				ExerciseID:    exercise.ID,
				SetIndex:      setIndex,
				PlannedWeight: 0,
				PlannedReps:   exercise.DefaultReps,
				Exercise:      &exercise,
			})
		}
	}
	return sets
}

func clampCustomSets(value int) int {
	if value < MinCustomSets {
		return MinCustomSets
	}
	if value > MaxCustomSets {
		return MaxCustomSets
	}
	return value
}

// CreateRestDay marks today as a rest day. An existing workout for today is
// overwritten in place; its set records are kept. created is true only when
// no day existed for today.
func (service *WorkoutService) CreateRestDay(userID string) (models.WorkoutDay, bool, error) {
	dayStart, dayEnd := service.today()
	existing, found, err := service.days.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.WorkoutDay{}, false, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}
	if found {
		day, err := service.markRestDay(existing)
		return day, false, err
	}

	day := models.WorkoutDay{
		UserID: userID,
		Date:   dayStart,
		State:  models.WorkoutStateRestDay,
	}
	if err := service.days.CreateWithSets(&day, nil); err != nil {
		existing, found, findErr := service.days.FindByUserAndDayRange(userID, dayStart, dayEnd)
		if findErr == nil && found {
			day, err := service.markRestDay(existing)
			return day, false, err
		}
		return models.WorkoutDay{}, false, fmt.Errorf("%w: %w", ErrWorkoutCreateFailed, err)
	}
	day.Sets = []models.SetRecord{}
	return day, true, nil
}

func (service *WorkoutService) markRestDay(day models.WorkoutDay) (models.WorkoutDay, error) {
	if day.State != models.WorkoutStateRestDay {
		if err := service.days.UpdateState(day.ID, models.WorkoutStateRestDay); err != nil {
			return models.WorkoutDay{}, fmt.Errorf("%w: %w", ErrWorkoutUpdateFailed, err)
		}
		day.State = models.WorkoutStateRestDay
	}
	SortSetsForDisplay(day.Sets)
	return day, nil
}

// CreateWorkoutDay creates an empty day for an arbitrary date. Unlike the
// start operations it refuses to reuse an existing day.
func (service *WorkoutService) CreateWorkoutDay(userID string, date time.Time, restDay bool) (models.WorkoutDay, error) {
	dayStart, dayEnd := DayRange(date, service.location)
	_, found, err := service.days.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.WorkoutDay{}, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}
	if found {
		return models.WorkoutDay{}, ErrWorkoutDayExists
	}

	day := models.WorkoutDay{
		UserID: userID,
		Date:   dayStart,
		State:  models.WorkoutStateActive,
	}
	if restDay {
		day.State = models.WorkoutStateRestDay
	}
	if err := service.days.CreateWithSets(&day, nil); err != nil {
		if _, found, findErr := service.days.FindByUserAndDayRange(userID, dayStart, dayEnd); findErr == nil && found {
			return models.WorkoutDay{}, ErrWorkoutDayExists
		}
		return models.WorkoutDay{}, fmt.Errorf("%w: %w", ErrWorkoutCreateFailed, err)
	}
	day.Sets = []models.SetRecord{}
	return day, nil
}

// LogSet writes the actual values of one set and then re-derives completion
// of the owning workout day from all of its sets.
func (service *WorkoutService) LogSet(userID string, setID string, actualWeight float64, actualReps int, secondsRest *int) (SetLogResult, error) {
	if !validActualWeight(actualWeight) || actualReps <= 0 {
		return SetLogResult{}, ErrInvalidSetValues
	}
	if secondsRest != nil && *secondsRest < 0 {
		return SetLogResult{}, ErrInvalidSetValues
	}

	record, found, err := service.sets.FindByID(setID)
	if err != nil {
		return SetLogResult{}, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}
	if !found {
		return SetLogResult{}, ErrSetRecordNotFound
	}

	day, err := service.ownedDay(userID, record.WorkoutDayID, ErrSetRecordNotFound)
	if err != nil {
		return SetLogResult{}, err
	}

	if err := service.sets.UpdateActuals(record.ID, actualWeight, actualReps, secondsRest); err != nil {
		return SetLogResult{}, fmt.Errorf("%w: %w", ErrSetRecordWriteFailed, err)
	}
	record.ActualWeight = &actualWeight
	record.ActualReps = &actualReps
	if secondsRest != nil {
		rest := *secondsRest
		record.SecondsRest = &rest
	}

	completed, err := service.recomputeCompletion(day)
	if err != nil {
		return SetLogResult{}, err
	}
	return SetLogResult{Set: record, WorkoutCompleted: completed}, nil
}

// UpsertSetRecord writes a set keyed by (day, exercise, set index) and
// re-derives completion like LogSet.
func (service *WorkoutService) UpsertSetRecord(userID string, input SetRecordInput) (SetLogResult, error) {
	if input.SetIndex < 1 {
		return SetLogResult{}, ErrInvalidSetIndex
	}
	if !validActualWeight(input.PlannedWeight) || input.PlannedReps <= 0 {
		return SetLogResult{}, ErrInvalidSetValues
	}
	if input.ActualWeight != nil && !validActualWeight(*input.ActualWeight) {
		return SetLogResult{}, ErrInvalidSetValues
	}
	if input.ActualReps != nil && *input.ActualReps <= 0 {
		return SetLogResult{}, ErrInvalidSetValues
	}
	if input.SecondsRest != nil && *input.SecondsRest < 0 {
		return SetLogResult{}, ErrInvalidSetValues
	}

	day, err := service.ownedDay(userID, input.WorkoutDayID, ErrWorkoutNotFound)
	if err != nil {
		return SetLogResult{}, err
	}

	_, found, err := service.exercises.FindByID(input.ExerciseID)
	if err != nil {
		return SetLogResult{}, fmt.Errorf("%w: %w", ErrExerciseLoadFailed, err)
	}
	if !found {
		return SetLogResult{}, ErrExerciseNotFound
	}

	record := models.SetRecord{
		WorkoutDayID:  day.ID,
		ExerciseID:    input.ExerciseID,
		SetIndex:      input.SetIndex,
		PlannedWeight: input.PlannedWeight,
		PlannedReps:   input.PlannedReps,
		ActualWeight:  input.ActualWeight,
		ActualReps:    input.ActualReps,
		SecondsRest:   input.SecondsRest,
	}
	if err := service.sets.Upsert(&record); err != nil {
		return SetLogResult{}, fmt.Errorf("%w: %w", ErrSetRecordWriteFailed, err)
	}

	stored, found, err := service.sets.FindBySlot(day.ID, input.ExerciseID, input.SetIndex)
	if err != nil {
		return SetLogResult{}, fmt.Errorf("%w: %w", ErrSetRecordWriteFailed, err)
	}
	if !found {
		return SetLogResult{}, ErrSetRecordWriteFailed
	}

	completed, err := service.recomputeCompletion(day)
	if err != nil {
		return SetLogResult{}, err
	}
	return SetLogResult{Set: stored, WorkoutCompleted: completed}, nil
}

// recomputeCompletion moves an active day to completed once every one of its
// sets has actual values. It never reopens a day.
func (service *WorkoutService) recomputeCompletion(day models.WorkoutDay) (bool, error) {
	if day.State != models.WorkoutStateActive {
		return false, nil
	}

	records, err := service.sets.ListByWorkoutDay(day.ID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}
	if len(records) == 0 {
		return false, nil
	}
	for _, record := range records {
		if !record.IsCompleted() {
			return false, nil
		}
	}

	if err := service.days.UpdateState(day.ID, models.WorkoutStateCompleted); err != nil {
		return false, fmt.Errorf("%w: %w", ErrWorkoutUpdateFailed, err)
	}
	return true, nil
}

// CompleteWorkout closes an active day regardless of logged sets. Rest days
// and completed days are returned unchanged with changed set to false.
func (service *WorkoutService) CompleteWorkout(userID string, dayID string) (models.WorkoutDay, bool, error) {
	day, err := service.ownedDay(userID, dayID, ErrWorkoutNotFound)
	if err != nil {
		return models.WorkoutDay{}, false, err
	}
	changed := false
	if day.State == models.WorkoutStateActive {
		if err := service.days.UpdateState(day.ID, models.WorkoutStateCompleted); err != nil {
			return models.WorkoutDay{}, false, fmt.Errorf("%w: %w", ErrWorkoutUpdateFailed, err)
		}
		day.State = models.WorkoutStateCompleted
		changed = true
	}
	SortSetsForDisplay(day.Sets)
	return day, changed, nil
}

// UncompleteWorkout reopens a completed or rest day for logging. Logged
// actual values are kept.
func (service *WorkoutService) UncompleteWorkout(userID string, dayID string) (models.WorkoutDay, error) {
	day, err := service.ownedDay(userID, dayID, ErrWorkoutNotFound)
	if err != nil {
		return models.WorkoutDay{}, err
	}
	if day.State != models.WorkoutStateActive {
		if err := service.days.UpdateState(day.ID, models.WorkoutStateActive); err != nil {
			return models.WorkoutDay{}, fmt.Errorf("%w: %w", ErrWorkoutUpdateFailed, err)
		}
		day.State = models.WorkoutStateActive
	}
	SortSetsForDisplay(day.Sets)
	return day, nil
}

func (service *WorkoutService) DeleteWorkout(userID string, dayID string) error {
	day, err := service.ownedDay(userID, dayID, ErrWorkoutNotFound)
	if err != nil {
		return err
	}
	if err := service.days.DeleteWithSets(day.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrWorkoutDeleteFailed, err)
	}
	return nil
}

// ownedDay loads a day and checks it belongs to userID. A foreign day is
// reported as notFound so callers cannot probe other users' data.
func (service *WorkoutService) ownedDay(userID string, dayID string, notFound error) (models.WorkoutDay, error) {
	day, found, err := service.days.FindByID(dayID)
	if err != nil {
		return models.WorkoutDay{}, fmt.Errorf("%w: %w", ErrWorkoutLoadFailed, err)
	}
	if !found {
		return models.WorkoutDay{}, notFound
	}
	if day.UserID != userID {
		return models.WorkoutDay{}, fmt.Errorf("%w: %w", notFound, ErrNotOwned)
	}
	return day, nil
}

func validActualWeight(weight float64) bool {
	return weight >= 0 && !math.IsInf(weight, 0) && !math.IsNaN(weight)
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	return unique
}

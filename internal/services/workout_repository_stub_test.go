package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/splitday/internal/models"
)

var errUniqueConstraint = errors.New("UNIQUE constraint failed")

// workoutMemoryStore backs the day, set and exercise stubs so that they share
// one view of the data, like the tables behind the real repositories.
type workoutMemoryStore struct {
	days      map[string]models.WorkoutDay
	sets      map[string]models.SetRecord
	exercises map[string]models.Exercise
	nextID    int

	findDayErr     error
	createDayErr   error
	updateStateErr error
	deleteDayErr   error
	listSetsErr    error
	upsertErr      error
	listDaysErr    error

	stateUpdates int
}

func newWorkoutMemoryStore() *workoutMemoryStore {
	return &workoutMemoryStore{
		days:      make(map[string]models.WorkoutDay),
		sets:      make(map[string]models.SetRecord),
		exercises: make(map[string]models.Exercise),
	}
}

func (store *workoutMemoryStore) newID(prefix string) string {
	store.nextID++
	return fmt.Sprintf("%s-%d", prefix, store.nextID)
}

func (store *workoutMemoryStore) addExercise(name string, muscleGroup string) models.Exercise {
	exercise := models.Exercise{
		ID:          store.newID("exercise"),
		Name:        name,
		MuscleGroup: muscleGroup,
		DefaultSets: models.DefaultExerciseSets,
		DefaultReps: models.DefaultExerciseReps,
	}
	store.exercises[exercise.ID] = exercise
	return exercise
}

func (store *workoutMemoryStore) seedSplitExercises() {
	for _, entry := range []struct{ name, group string }{
		{"Bench Press", "Chest"},
		{"Incline Dumbbell Press", "Chest"},
		{"Chest Fly", "Chest"},
		{"Push Ups", "Chest"},
		{"Tricep Dips", "Triceps"},
		{"Skull Crushers", "Triceps"},
		{"Tricep Pushdown", "Triceps"},
		{"Deadlift", "Back"},
		{"Barbell Curl", "Biceps"},
	} {
		store.addExercise(entry.name, entry.group)
	}
}

func (store *workoutMemoryStore) addDay(userID string, date time.Time, state models.WorkoutState) models.WorkoutDay {
	day := models.WorkoutDay{
		ID:     store.newID("day"),
		UserID: userID,
		Date:   date,
		State:  state,
	}
	store.days[day.ID] = day
	return day
}

func (store *workoutMemoryStore) withSets(day models.WorkoutDay) models.WorkoutDay {
	day.Sets = store.setsOfDay(day.ID)
	return day
}

func (store *workoutMemoryStore) setsOfDay(dayID string) []models.SetRecord {
	sets := make([]models.SetRecord, 0)
	for _, record := range store.sets {
		if record.WorkoutDayID == dayID {
			sets = append(sets, store.withExercise(record))
		}
	}
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].ExerciseID != sets[j].ExerciseID {
			return sets[i].ExerciseID < sets[j].ExerciseID
		}
		return sets[i].SetIndex < sets[j].SetIndex
	})
	return sets
}

func (store *workoutMemoryStore) withExercise(record models.SetRecord) models.SetRecord {
	if exercise, ok := store.exercises[record.ExerciseID]; ok {
		record.Exercise = &exercise
	}
	return record
}

func (store *workoutMemoryStore) daysOfUser(userID string) []models.WorkoutDay {
	days := make([]models.WorkoutDay, 0)
	for _, day := range store.days {
		if day.UserID == userID {
			days = append(days, store.withSets(day))
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

type workoutDayRepositoryStub struct {
	store *workoutMemoryStore
}

func (stub workoutDayRepositoryStub) FindByUserAndDayRange(userID string, dayStart time.Time, dayEnd time.Time) (models.WorkoutDay, bool, error) {
	if stub.store.findDayErr != nil {
		return models.WorkoutDay{}, false, stub.store.findDayErr
	}
	for _, day := range stub.store.days {
		if day.UserID == userID && !day.Date.Before(dayStart) && day.Date.Before(dayEnd) {
			return stub.store.withSets(day), true, nil
		}
	}
	return models.WorkoutDay{}, false, nil
}

func (stub workoutDayRepositoryStub) FindByID(dayID string) (models.WorkoutDay, bool, error) {
	if stub.store.findDayErr != nil {
		return models.WorkoutDay{}, false, stub.store.findDayErr
	}
	day, ok := stub.store.days[dayID]
	if !ok {
		return models.WorkoutDay{}, false, nil
	}
	return stub.store.withSets(day), true, nil
}

func (stub workoutDayRepositoryStub) CreateWithSets(day *models.WorkoutDay, sets []models.SetRecord) error {
	if stub.store.createDayErr != nil {
		return stub.store.createDayErr
	}
	for _, existing := range stub.store.days {
		if existing.UserID == day.UserID && existing.Date.Equal(day.Date) {
			return errUniqueConstraint
		}
	}

	day.ID = stub.store.newID("day")
	stored := *day
	stored.Sets = nil
	stub.store.days[day.ID] = stored
	for index := range sets {
		sets[index].ID = stub.store.newID("set")
		sets[index].WorkoutDayID = day.ID
		record := sets[index]
		record.Exercise = nil
		stub.store.sets[record.ID] = record
	}
	return nil
}

func (stub workoutDayRepositoryStub) UpdateState(dayID string, state models.WorkoutState) error {
	if stub.store.updateStateErr != nil {
		return stub.store.updateStateErr
	}
	day, ok := stub.store.days[dayID]
	if !ok {
		return errors.New("record not found")
	}
	day.State = state
	stub.store.days[dayID] = day
	stub.store.stateUpdates++
	return nil
}

func (stub workoutDayRepositoryStub) DeleteWithSets(dayID string) error {
	if stub.store.deleteDayErr != nil {
		return stub.store.deleteDayErr
	}
	for id, record := range stub.store.sets {
		if record.WorkoutDayID == dayID {
			delete(stub.store.sets, id)
		}
	}
	delete(stub.store.days, dayID)
	return nil
}

func (stub workoutDayRepositoryStub) ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.WorkoutDay, error) {
	if stub.store.listDaysErr != nil {
		return nil, stub.store.listDaysErr
	}
	days := make([]models.WorkoutDay, 0)
	for _, day := range stub.store.daysOfUser(userID) {
		if fromStart != nil && day.Date.Before(*fromStart) {
			continue
		}
		if toEnd != nil && !day.Date.Before(*toEnd) {
			continue
		}
		days = append(days, day)
	}
	return days, nil
}

func (stub workoutDayRepositoryStub) ListRecentByUser(userID string, limit int) ([]models.WorkoutDay, error) {
	if stub.store.listDaysErr != nil {
		return nil, stub.store.listDaysErr
	}
	days := stub.store.daysOfUser(userID)
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}
	return days, nil
}

func (stub workoutDayRepositoryStub) CountByUserAndStates(userID string, states ...models.WorkoutState) (int64, error) {
	if stub.store.listDaysErr != nil {
		return 0, stub.store.listDaysErr
	}
	var count int64
	for _, day := range stub.store.days {
		if day.UserID != userID {
			continue
		}
		for _, state := range states {
			if day.State == state {
				count++
				break
			}
		}
	}
	return count, nil
}

type setRecordRepositoryStub struct {
	store *workoutMemoryStore
}

func (stub setRecordRepositoryStub) FindByID(setID string) (models.SetRecord, bool, error) {
	record, ok := stub.store.sets[setID]
	if !ok {
		return models.SetRecord{}, false, nil
	}
	return stub.store.withExercise(record), true, nil
}

func (stub setRecordRepositoryStub) FindBySlot(dayID string, exerciseID string, setIndex int) (models.SetRecord, bool, error) {
	for _, record := range stub.store.sets {
		if record.WorkoutDayID == dayID && record.ExerciseID == exerciseID && record.SetIndex == setIndex {
			return stub.store.withExercise(record), true, nil
		}
	}
	return models.SetRecord{}, false, nil
}

func (stub setRecordRepositoryStub) ListByWorkoutDay(dayID string) ([]models.SetRecord, error) {
	if stub.store.listSetsErr != nil {
		return nil, stub.store.listSetsErr
	}
	return stub.store.setsOfDay(dayID), nil
}

func (stub setRecordRepositoryStub) UpdateActuals(setID string, actualWeight float64, actualReps int, secondsRest *int) error {
	record, ok := stub.store.sets[setID]
	if !ok {
		return errors.New("record not found")
	}
	record.ActualWeight = &actualWeight
	record.ActualReps = &actualReps
	if secondsRest != nil {
		rest := *secondsRest
		record.SecondsRest = &rest
	}
	stub.store.sets[setID] = record
	return nil
}

func (stub setRecordRepositoryStub) Upsert(record *models.SetRecord) error {
	if stub.store.upsertErr != nil {
		return stub.store.upsertErr
	}
	existing, found, _ := stub.FindBySlot(record.WorkoutDayID, record.ExerciseID, record.SetIndex)
	stored := *record
	stored.Exercise = nil
	if found {
		stored.ID = existing.ID
	} else {
		stored.ID = stub.store.newID("set")
	}
	record.ID = stored.ID
	stub.store.sets[stored.ID] = stored
	return nil
}

func (stub setRecordRepositoryStub) CountCompletedByUser(userID string) (int64, error) {
	records, err := stub.ListCompletedByUser(userID)
	return int64(len(records)), err
}

func (stub setRecordRepositoryStub) ListCompletedByUser(userID string) ([]models.SetRecord, error) {
	records := make([]models.SetRecord, 0)
	for _, day := range stub.store.daysOfUser(userID) {
		for _, record := range day.Sets {
			if record.IsCompleted() {
				records = append(records, record)
			}
		}
	}
	return records, nil
}

type exerciseRepositoryStub struct {
	store      *workoutMemoryStore
	listErr    error
	createErr  error
	popularErr error
}

func (stub *exerciseRepositoryStub) sorted(filter func(models.Exercise) bool) []models.Exercise {
	exercises := make([]models.Exercise, 0)
	for _, exercise := range stub.store.exercises {
		if filter(exercise) {
			exercises = append(exercises, exercise)
		}
	}
	sort.Slice(exercises, func(i, j int) bool {
		if exercises[i].MuscleGroup != exercises[j].MuscleGroup {
			return exercises[i].MuscleGroup < exercises[j].MuscleGroup
		}
		return exercises[i].Name < exercises[j].Name
	})
	return exercises
}

func (stub *exerciseRepositoryStub) List(muscleGroup string, search string) ([]models.Exercise, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	return stub.sorted(func(exercise models.Exercise) bool {
		if muscleGroup != "" && exercise.MuscleGroup != muscleGroup {
			return false
		}
		return search == "" || strings.Contains(strings.ToLower(exercise.Name), strings.ToLower(search))
	}), nil
}

func (stub *exerciseRepositoryStub) ListByMuscleGroup(muscleGroup string, limit int) ([]models.Exercise, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	exercises := stub.sorted(func(exercise models.Exercise) bool {
		return exercise.MuscleGroup == muscleGroup
	})
	if limit > 0 && len(exercises) > limit {
		exercises = exercises[:limit]
	}
	return exercises, nil
}

func (stub *exerciseRepositoryStub) FindByIDs(exerciseIDs []string) ([]models.Exercise, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	wanted := make(map[string]bool, len(exerciseIDs))
	for _, id := range exerciseIDs {
		wanted[id] = true
	}
	exercises := stub.sorted(func(exercise models.Exercise) bool {
		return wanted[exercise.ID]
	})
	sort.Slice(exercises, func(i, j int) bool {
		return exercises[i].Name < exercises[j].Name
	})
	return exercises, nil
}

func (stub *exerciseRepositoryStub) FindByID(exerciseID string) (models.Exercise, bool, error) {
	exercise, ok := stub.store.exercises[exerciseID]
	return exercise, ok, nil
}

func (stub *exerciseRepositoryStub) FindByName(name string) (models.Exercise, bool, error) {
	for _, exercise := range stub.store.exercises {
		if exercise.Name == name {
			return exercise, true, nil
		}
	}
	return models.Exercise{}, false, nil
}

func (stub *exerciseRepositoryStub) Popular(limit int) ([]models.ExerciseUsage, error) {
	if stub.popularErr != nil {
		return nil, stub.popularErr
	}
	counts := make(map[string]int64)
	for _, record := range stub.store.sets {
		counts[record.ExerciseID]++
	}
	usage := make([]models.ExerciseUsage, 0, len(stub.store.exercises))
	for _, exercise := range stub.store.exercises {
		usage = append(usage, models.ExerciseUsage{Exercise: exercise, SetCount: counts[exercise.ID]})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].SetCount != usage[j].SetCount {
			return usage[i].SetCount > usage[j].SetCount
		}
		return usage[i].Name < usage[j].Name
	})
	if limit > 0 && len(usage) > limit {
		usage = usage[:limit]
	}
	return usage, nil
}

func (stub *exerciseRepositoryStub) Create(exercise *models.Exercise) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	exercise.ID = stub.store.newID("exercise")
	stub.store.exercises[exercise.ID] = *exercise
	return nil
}

func (stub *exerciseRepositoryStub) Save(exercise *models.Exercise) error {
	stub.store.exercises[exercise.ID] = *exercise
	return nil
}

func (stub *exerciseRepositoryStub) Delete(exerciseID string) error {
	delete(stub.store.exercises, exerciseID)
	return nil
}

func (stub *exerciseRepositoryStub) CountSetRecords(exerciseID string) (int64, error) {
	var count int64
	for _, record := range stub.store.sets {
		if record.ExerciseID == exerciseID {
			count++
		}
	}
	return count, nil
}

type workoutTestEnv struct {
	store     *workoutMemoryStore
	exercises *exerciseRepositoryStub
	workouts  *WorkoutService
	stats     *StatsService
}

func newWorkoutTestEnv(now time.Time) workoutTestEnv {
	store := newWorkoutMemoryStore()
	exercises := &exerciseRepositoryStub{store: store}
	days := workoutDayRepositoryStub{store: store}
	sets := setRecordRepositoryStub{store: store}

	workouts := NewWorkoutService(days, sets, exercises, time.UTC)
	workouts.now = func() time.Time { return now }
	stats := NewStatsService(days, sets, time.UTC)
	stats.now = func() time.Time { return now }

	return workoutTestEnv{
		store:     store,
		exercises: exercises,
		workouts:  workouts,
		stats:     stats,
	}
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/splitday/internal/models"
)

var (
	ErrExerciseNotFound    = errors.New("exercise not found")
	ErrExerciseNameTaken   = errors.New("exercise name already exists")
	ErrExerciseInUse       = errors.New("exercise is referenced by set records")
	ErrExerciseInvalid     = errors.New("exercise invalid")
	ErrExerciseWriteFailed = errors.New("write exercise failed")
)

const (
	maxExerciseNameLength = 100
	DefaultPopularLimit   = 10
	maxPopularLimit       = 50
)

type ExerciseRepository interface {
	List(muscleGroup string, search string) ([]models.Exercise, error)
	FindByID(exerciseID string) (models.Exercise, bool, error)
	FindByName(name string) (models.Exercise, bool, error)
	Popular(limit int) ([]models.ExerciseUsage, error)
	Create(exercise *models.Exercise) error
	Save(exercise *models.Exercise) error
	Delete(exerciseID string) error
	CountSetRecords(exerciseID string) (int64, error)
}

type ExerciseInput struct {
	Name        string
	MuscleGroup string
	DefaultSets int
	DefaultReps int
}

// ExerciseListing is a filtered catalog with the same exercises grouped by muscle group.
type ExerciseListing struct {
	Exercises    []models.Exercise            `json:"exercises"`
	Grouped      map[string][]models.Exercise `json:"grouped"`
	MuscleGroups []MuscleGroupCount           `json:"muscleGroups"`
}

type MuscleGroupCount struct {
	MuscleGroup string `json:"muscleGroup"`
	Count       int    `json:"count"`
}

type ExerciseService struct {
	exercises ExerciseRepository
}

func NewExerciseService(exercises ExerciseRepository) *ExerciseService {
	return &ExerciseService{exercises: exercises}
}

func (service *ExerciseService) List(muscleGroup string, search string) (ExerciseListing, error) {
	exercises, err := service.exercises.List(strings.TrimSpace(muscleGroup), strings.TrimSpace(search))
	if err != nil {
		return ExerciseListing{}, fmt.Errorf("%w: %w", ErrExerciseLoadFailed, err)
	}

	listing := ExerciseListing{
		Exercises:    exercises,
		Grouped:      make(map[string][]models.Exercise),
		MuscleGroups: make([]MuscleGroupCount, 0),
	}
	// exercises arrive ordered by muscle group, so counts come out sorted too
	for _, exercise := range exercises {
		if _, ok := listing.Grouped[exercise.MuscleGroup]; !ok {
			listing.MuscleGroups = append(listing.MuscleGroups, MuscleGroupCount{MuscleGroup: exercise.MuscleGroup})
		}
		listing.Grouped[exercise.MuscleGroup] = append(listing.Grouped[exercise.MuscleGroup], exercise)
		listing.MuscleGroups[len(listing.MuscleGroups)-1].Count++
	}
	return listing, nil
}

func (service *ExerciseService) Popular(limit int) ([]models.ExerciseUsage, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}

	usage, err := service.exercises.Popular(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExerciseLoadFailed, err)
	}
	return usage, nil
}

func (service *ExerciseService) Get(exerciseID string) (models.Exercise, error) {
	exercise, found, err := service.exercises.FindByID(exerciseID)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("%w: %w", ErrExerciseLoadFailed, err)
	}
	if !found {
		return models.Exercise{}, ErrExerciseNotFound
	}
	return exercise, nil
}

func (service *ExerciseService) Create(input ExerciseInput) (models.Exercise, error) {
	input, err := normalizeExerciseInput(input)
	if err != nil {
		return models.Exercise{}, err
	}
	if err := service.ensureNameAvailable(input.Name, ""); err != nil {
		return models.Exercise{}, err
	}

	exercise := models.Exercise{
		Name:        input.Name,
		MuscleGroup: input.MuscleGroup,
		DefaultSets: input.DefaultSets,
		DefaultReps: input.DefaultReps,
	}
	if err := service.exercises.Create(&exercise); err != nil {
		if _, found, findErr := service.exercises.FindByName(input.Name); findErr == nil && found {
			return models.Exercise{}, ErrExerciseNameTaken
		}
		return models.Exercise{}, fmt.Errorf("%w: %w", ErrExerciseWriteFailed, err)
	}
	return exercise, nil
}

func (service *ExerciseService) Update(exerciseID string, input ExerciseInput) (models.Exercise, error) {
	exercise, err := service.Get(exerciseID)
	if err != nil {
		return models.Exercise{}, err
	}
	input, err = normalizeExerciseInput(input)
	if err != nil {
		return models.Exercise{}, err
	}
	if err := service.ensureNameAvailable(input.Name, exercise.ID); err != nil {
		return models.Exercise{}, err
	}

	exercise.Name = input.Name
	exercise.MuscleGroup = input.MuscleGroup
	exercise.DefaultSets = input.DefaultSets
	exercise.DefaultReps = input.DefaultReps
	if err := service.exercises.Save(&exercise); err != nil {
		return models.Exercise{}, fmt.Errorf("%w: %w", ErrExerciseWriteFailed, err)
	}
	return exercise, nil
}

// Delete refuses to remove an exercise while any set record points at it.
func (service *ExerciseService) Delete(exerciseID string) error {
	exercise, err := service.Get(exerciseID)
	if err != nil {
		return err
	}

	references, err := service.exercises.CountSetRecords(exercise.ID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExerciseLoadFailed, err)
	}
	if references > 0 {
		return ErrExerciseInUse
	}
	if err := service.exercises.Delete(exercise.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrExerciseWriteFailed, err)
	}
	return nil
}

func (service *ExerciseService) ensureNameAvailable(name string, exceptID string) error {
	existing, found, err := service.exercises.FindByName(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExerciseLoadFailed, err)
	}
	if found && existing.ID != exceptID {
		return ErrExerciseNameTaken
	}
	return nil
}

func normalizeExerciseInput(input ExerciseInput) (ExerciseInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.MuscleGroup = strings.TrimSpace(input.MuscleGroup)
	if input.Name == "" || utf8.RuneCountInString(input.Name) > maxExerciseNameLength || input.MuscleGroup == "" {
		return ExerciseInput{}, ErrExerciseInvalid
	}

	if input.DefaultSets == 0 {
		input.DefaultSets = models.DefaultExerciseSets
	}
	if input.DefaultReps == 0 {
		input.DefaultReps = models.DefaultExerciseReps
	}
	if input.DefaultSets < MinCustomSets || input.DefaultSets > MaxCustomSets || input.DefaultReps < 1 {
		return ExerciseInput{}, ErrExerciseInvalid
	}
	return input, nil
}

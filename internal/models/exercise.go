package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultExerciseSets = 3
	DefaultExerciseReps = 10
)

// Exercise is a catalog template. SetRecords reference it by ID.
type Exercise struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	MuscleGroup string    `gorm:"not null;index" json:"muscleGroup"`
	DefaultSets int       `gorm:"not null;default:3" json:"defaultSets"`
	DefaultReps int       `gorm:"not null;default:10" json:"defaultReps"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (exercise *Exercise) BeforeCreate(*gorm.DB) error {
	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	return nil
}

// ExerciseUsage is an exercise with the number of set records referencing it.
type ExerciseUsage struct {
	Exercise
	SetCount int64 `json:"setCount"`
}

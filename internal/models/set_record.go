package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SetRecord struct {
	ID            string      `gorm:"primaryKey;type:text" json:"id"`
	WorkoutDayID  string      `gorm:"not null;uniqueIndex:uidx_set_records_slot" json:"workoutDayId"`
	ExerciseID    string      `gorm:"not null;uniqueIndex:uidx_set_records_slot" json:"exerciseId"`
	SetIndex      int         `gorm:"not null;uniqueIndex:uidx_set_records_slot" json:"setIndex"`
	PlannedWeight float64     `gorm:"not null;default:0" json:"plannedWeight"`
	PlannedReps   int         `gorm:"not null" json:"plannedReps"`
	ActualWeight  *float64    `json:"actualWeight"`
	ActualReps    *int        `json:"actualReps"`
	SecondsRest   *int        `json:"secondsRest"`
	Exercise      *Exercise   `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
	WorkoutDay    *WorkoutDay `gorm:"foreignKey:WorkoutDayID" json:"workoutDay,omitempty"`
	CreatedAt     time.Time   `json:"-"`
	UpdatedAt     time.Time   `json:"-"`
}

func (record *SetRecord) BeforeCreate(*gorm.DB) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return nil
}

// IsCompleted is true once both actual values have been logged.
func (record SetRecord) IsCompleted() bool {
	return record.ActualWeight != nil && record.ActualReps != nil
}

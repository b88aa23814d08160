package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkoutState is the lifecycle of a WorkoutDay: active, completed or rest day.
type WorkoutState string

const (
	WorkoutStateActive    WorkoutState = "active"
	WorkoutStateCompleted WorkoutState = "completed"
	WorkoutStateRestDay   WorkoutState = "rest_day"
)

func (state WorkoutState) Valid() bool {
	switch state {
	case WorkoutStateActive, WorkoutStateCompleted, WorkoutStateRestDay:
		return true
	default:
		return false
	}
}

// IsCompleted reports the legacy "completed" flag: rest days count as completed.
func (state WorkoutState) IsCompleted() bool {
	return state == WorkoutStateCompleted || state == WorkoutStateRestDay
}

func (state WorkoutState) IsRestDay() bool {
	return state == WorkoutStateRestDay
}

type WorkoutDay struct {
	ID        string       `gorm:"primaryKey;type:text" json:"id"`
	UserID    string       `gorm:"not null;uniqueIndex:uidx_workout_days_user_date" json:"userId"`
	Date      time.Time    `gorm:"type:date;not null;uniqueIndex:uidx_workout_days_user_date" json:"date"`
	State     WorkoutState `gorm:"not null;default:active" json:"state"`
	Sets      []SetRecord  `gorm:"foreignKey:WorkoutDayID" json:"sets"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (day *WorkoutDay) BeforeCreate(*gorm.DB) error {
	if day.ID == "" {
		day.ID = uuid.NewString()
	}
	if day.State == "" {
		day.State = WorkoutStateActive
	}
	return nil
}

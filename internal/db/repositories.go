package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Exercises   *ExerciseRepository
	WorkoutDays *WorkoutDayRepository
	SetRecords  *SetRecordRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Exercises:   NewExerciseRepository(database),
		WorkoutDays: NewWorkoutDayRepository(database),
		SetRecords:  NewSetRecordRepository(database),
	}
}

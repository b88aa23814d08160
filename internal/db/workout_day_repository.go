package db

import (
	"time"

	"github.com/terraincognita07/splitday/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkoutDayRepository struct {
	database *gorm.DB
}

func NewWorkoutDayRepository(database *gorm.DB) *WorkoutDayRepository {
	return &WorkoutDayRepository{database: database}
}

func withSetsAndExercises(query *gorm.DB) *gorm.DB {
	return query.Preload("Sets").Preload("Sets.Exercise")
}

func (repo *WorkoutDayRepository) FindByUserAndDayRange(userID string, dayStart time.Time, dayEnd time.Time) (models.WorkoutDay, bool, error) {
	day := models.WorkoutDay{}
	result := withSetsAndExercises(repo.database).
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date DESC").
		Limit(1).
		Find(&day)
	if result.Error != nil {
		return models.WorkoutDay{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WorkoutDay{}, false, nil
	}
	return day, true, nil
}

func (repo *WorkoutDayRepository) FindByID(dayID string) (models.WorkoutDay, bool, error) {
	day := models.WorkoutDay{}
	result := withSetsAndExercises(repo.database).Where("id = ?", dayID).Limit(1).Find(&day)
	if result.Error != nil {
		return models.WorkoutDay{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WorkoutDay{}, false, nil
	}
	return day, true, nil
}

// CreateWithSets inserts the day and its planned sets in one transaction.
// The (user_id, date) unique index rejects a concurrent duplicate.
func (repo *WorkoutDayRepository) CreateWithSets(day *models.WorkoutDay, sets []models.SetRecord) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(day).Error; err != nil {
			return err
		}
		if len(sets) == 0 {
			return nil
		}
		for index := range sets {
			sets[index].WorkoutDayID = day.ID
		}
		if err := tx.Omit(clause.Associations).Create(&sets).Error; err != nil {
			return err
		}
		day.Sets = sets
		return nil
	})
}

func (repo *WorkoutDayRepository) UpdateState(dayID string, state models.WorkoutState) error {
	return repo.database.Model(&models.WorkoutDay{}).Where("id = ?", dayID).Update("state", state).Error
}

func (repo *WorkoutDayRepository) DeleteWithSets(dayID string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_day_id = ?", dayID).Delete(&models.SetRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", dayID).Delete(&models.WorkoutDay{}).Error
	})
}

// ListByUserRange returns days newest first; nil bounds are open.
func (repo *WorkoutDayRepository) ListByUserRange(userID string, fromStart *time.Time, toEnd *time.Time) ([]models.WorkoutDay, error) {
	query := withSetsAndExercises(repo.database).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	days := make([]models.WorkoutDay, 0)
	if err := query.Order("date DESC").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *WorkoutDayRepository) ListRecentByUser(userID string, limit int) ([]models.WorkoutDay, error) {
	days := make([]models.WorkoutDay, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *WorkoutDayRepository) CountByUserAndStates(userID string, states ...models.WorkoutState) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.WorkoutDay{}).
		Where("user_id = ? AND state IN ?", userID, states).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

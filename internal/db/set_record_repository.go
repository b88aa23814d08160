package db

import (
	"github.com/terraincognita07/splitday/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SetRecordRepository struct {
	database *gorm.DB
}

func NewSetRecordRepository(database *gorm.DB) *SetRecordRepository {
	return &SetRecordRepository{database: database}
}

func (repo *SetRecordRepository) FindByID(setID string) (models.SetRecord, bool, error) {
	record := models.SetRecord{}
	result := repo.database.Preload("Exercise").Where("id = ?", setID).Limit(1).Find(&record)
	if result.Error != nil {
		return models.SetRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SetRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *SetRecordRepository) FindBySlot(dayID string, exerciseID string, setIndex int) (models.SetRecord, bool, error) {
	record := models.SetRecord{}
	result := repo.database.Preload("Exercise").
		Where("workout_day_id = ? AND exercise_id = ? AND set_index = ?", dayID, exerciseID, setIndex).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.SetRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SetRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *SetRecordRepository) ListByWorkoutDay(dayID string) ([]models.SetRecord, error) {
	records := make([]models.SetRecord, 0)
	if err := repo.database.Where("workout_day_id = ?", dayID).Order("set_index ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *SetRecordRepository) UpdateActuals(setID string, actualWeight float64, actualReps int, secondsRest *int) error {
	updates := map[string]any{
		"actual_weight": actualWeight,
		"actual_reps":   actualReps,
	}
	if secondsRest != nil {
		updates["seconds_rest"] = *secondsRest
	}
	return repo.database.Model(&models.SetRecord{}).Where("id = ?", setID).Updates(updates).Error
}

// Upsert writes the record keyed by (workout_day_id, exercise_id, set_index).
func (repo *SetRecordRepository) Upsert(record *models.SetRecord) error {
	return repo.database.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "workout_day_id"}, {Name: "exercise_id"}, {Name: "set_index"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"planned_weight",
			"planned_reps",
			"actual_weight",
			"actual_reps",
			"seconds_rest",
			"updated_at",
		}),
	}).Create(record).Error
}

func (repo *SetRecordRepository) CountCompletedByUser(userID string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.SetRecord{}).
		Joins("JOIN workout_days ON workout_days.id = set_records.workout_day_id").
		Where("workout_days.user_id = ? AND set_records.actual_weight IS NOT NULL AND set_records.actual_reps IS NOT NULL", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *SetRecordRepository) ListCompletedByUser(userID string) ([]models.SetRecord, error) {
	records := make([]models.SetRecord, 0)
	if err := repo.database.Preload("Exercise").Preload("WorkoutDay").
		Joins("JOIN workout_days ON workout_days.id = set_records.workout_day_id").
		Where("workout_days.user_id = ? AND set_records.actual_weight IS NOT NULL AND set_records.actual_reps IS NOT NULL", userID).
		Order("workout_days.date DESC, set_records.set_index ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

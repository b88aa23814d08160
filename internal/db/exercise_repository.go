package db

import (
	"strings"

	"github.com/terraincognita07/splitday/internal/models"
	"gorm.io/gorm"
)

type ExerciseRepository struct {
	database *gorm.DB
}

func NewExerciseRepository(database *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{database: database}
}

func (repo *ExerciseRepository) List(muscleGroup string, search string) ([]models.Exercise, error) {
	query := repo.database.Model(&models.Exercise{})
	if group := strings.TrimSpace(muscleGroup); group != "" {
		query = query.Where("muscle_group = ?", group)
	}
	if term := strings.ToLower(strings.TrimSpace(search)); term != "" {
		query = query.Where("lower(name) LIKE ?", "%"+term+"%")
	}

	exercises := make([]models.Exercise, 0)
	if err := query.Order("muscle_group ASC, name ASC").Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (repo *ExerciseRepository) ListByMuscleGroup(muscleGroup string, limit int) ([]models.Exercise, error) {
	exercises := make([]models.Exercise, 0)
	query := repo.database.Where("muscle_group = ?", muscleGroup).Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (repo *ExerciseRepository) FindByIDs(exerciseIDs []string) ([]models.Exercise, error) {
	exercises := make([]models.Exercise, 0)
	if len(exerciseIDs) == 0 {
		return exercises, nil
	}
	if err := repo.database.Where("id IN ?", exerciseIDs).Order("name ASC").Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (repo *ExerciseRepository) FindByID(exerciseID string) (models.Exercise, bool, error) {
	exercise := models.Exercise{}
	result := repo.database.Where("id = ?", exerciseID).Limit(1).Find(&exercise)
	if result.Error != nil {
		return models.Exercise{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Exercise{}, false, nil
	}
	return exercise, true, nil
}

func (repo *ExerciseRepository) FindByName(name string) (models.Exercise, bool, error) {
	exercise := models.Exercise{}
	result := repo.database.Where("name = ?", name).Limit(1).Find(&exercise)
	if result.Error != nil {
		return models.Exercise{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Exercise{}, false, nil
	}
	return exercise, true, nil
}

func (repo *ExerciseRepository) Popular(limit int) ([]models.ExerciseUsage, error) {
	usage := make([]models.ExerciseUsage, 0)
	query := repo.database.Model(&models.Exercise{}).
		Select("exercises.*, COUNT(set_records.id) AS set_count").
		Joins("LEFT JOIN set_records ON set_records.exercise_id = exercises.id").
		Group("exercises.id").
		Order("set_count DESC, exercises.name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&usage).Error; err != nil {
		return nil, err
	}
	return usage, nil
}

func (repo *ExerciseRepository) Create(exercise *models.Exercise) error {
	return repo.database.Create(exercise).Error
}

func (repo *ExerciseRepository) Save(exercise *models.Exercise) error {
	return repo.database.Save(exercise).Error
}

func (repo *ExerciseRepository) Delete(exerciseID string) error {
	return repo.database.Where("id = ?", exerciseID).Delete(&models.Exercise{}).Error
}

func (repo *ExerciseRepository) CountSetRecords(exerciseID string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.SetRecord{}).Where("exercise_id = ?", exerciseID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

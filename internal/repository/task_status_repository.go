package repository

import (
	"github.com/yukikurage/task-manager/internal/models"
	"gorm.io/gorm"
)

// GormTaskStatusRepository is a GORM implementation of TaskStatusRepository
type GormTaskStatusRepository struct {
	db *gorm.DB
}

// NewTaskStatusRepository creates a new TaskStatusRepository
func NewTaskStatusRepository(db *gorm.DB) TaskStatusRepository {
	return &GormTaskStatusRepository{db: db}
}

func (r *GormTaskStatusRepository) Create(status *models.TaskStatus) error {
	return r.db.Create(status).Error
}

func (r *GormTaskStatusRepository) FindByID(id uint64) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := r.db.First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *GormTaskStatusRepository) FindBySlug(slug string) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := r.db.Where("slug = ?", slug).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *GormTaskStatusRepository) FindAll() ([]models.TaskStatus, error) {
	var statuses []models.TaskStatus
	if err := r.db.Order("task_statuses.id").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *GormTaskStatusRepository) Update(status *models.TaskStatus) error {
	return r.db.Save(status).Error
}

func (r *GormTaskStatusRepository) Delete(id uint64) error {
	return r.db.Delete(&models.TaskStatus{}, id).Error
}

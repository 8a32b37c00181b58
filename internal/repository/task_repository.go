package repository

import (
	"strings"

	"github.com/yukikurage/task-manager/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves the tasks matching every supplied filter criterion. Absent
// criteria are unconstrained, so an empty filter returns the full collection.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.TitleCont != nil {
		pattern := "%" + strings.ToLower(*filter.TitleCont) + "%"
		query = query.Where("LOWER(tasks.name) LIKE ?", pattern)
	}
	if filter.AssigneeID != nil {
		query = query.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.StatusSlug != nil {
		query = query.
			Joins("JOIN task_statuses ON task_statuses.id = tasks.status_id").
			Where("task_statuses.slug = ?", *filter.StatusSlug)
	}
	if filter.LabelID != nil {
		labelSubQuery := r.db.Table("task_labels").
			Select("1").
			Where("task_labels.task_id = tasks.id").
			Where("task_labels.label_id = ?", *filter.LabelID)
		query = query.Where("EXISTS (?)", labelSubQuery)
	}

	if err := query.Preload("Status").Preload("Labels").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update writes the scalar columns and the label replacement atomically. A
// nil labels pointer leaves the existing label set alone; a pointer to an
// empty slice clears it.
func (r *GormTaskRepository) Update(task *models.Task, labels *[]models.Label) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Save alone would upsert the association rows too.
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		if labels != nil {
			if err := tx.Model(task).Association("Labels").Replace(*labels); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_labels WHERE task_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

func (r *GormTaskRepository) ExistsByAssigneeID(userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("assignee_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormTaskRepository) ExistsByStatusID(statusID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("status_id = ?", statusID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormTaskRepository) ExistsByLabelID(labelID uint64) (bool, error) {
	var count int64
	err := r.db.Table("task_labels").
		Where("label_id = ?", labelID).
		Count(&count).Error
	return count > 0, err
}

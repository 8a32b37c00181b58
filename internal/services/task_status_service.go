package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/task-manager/internal/dto"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrStatusNotFound = errors.New("status not found")
	ErrSlugTaken      = errors.New("slug already exists")
	ErrSlugRequired   = errors.New("slug cannot be null")
	ErrStatusNameNull = errors.New("status name cannot be null")
	ErrStatusInUse    = errors.New("cannot delete status: it is used in tasks")
)

// TaskStatusService handles task status business logic.
type TaskStatusService struct {
	statusRepo repository.TaskStatusRepository
	taskRepo   repository.TaskRepository
}

// NewTaskStatusService creates a new TaskStatusService.
func NewTaskStatusService(statusRepo repository.TaskStatusRepository, taskRepo repository.TaskRepository) *TaskStatusService {
	return &TaskStatusService{
		statusRepo: statusRepo,
		taskRepo:   taskRepo,
	}
}

// CreateStatusInput represents input for creating a task status.
type CreateStatusInput struct {
	Name string
	Slug string
}

func (s *TaskStatusService) GetAll() ([]models.TaskStatus, error) {
	statuses, err := s.statusRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return statuses, nil
}

func (s *TaskStatusService) GetByID(id uint64) (*models.TaskStatus, error) {
	status, err := s.statusRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to find status: %w", err)
	}
	return status, nil
}

func (s *TaskStatusService) GetBySlug(slug string) (*models.TaskStatus, error) {
	status, err := s.statusRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to find status: %w", err)
	}
	return status, nil
}

// Create adds a status with a unique slug. The pre-check is the friendly
// path; the unique index remains the authoritative guard.
func (s *TaskStatusService) Create(input CreateStatusInput) (*models.TaskStatus, error) {
	if _, err := s.statusRepo.FindBySlug(input.Slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	status := &models.TaskStatus{
		Name: input.Name,
		Slug: input.Slug,
	}

	if err := s.statusRepo.Create(status); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create status: %w", err)
	}

	return status, nil
}

func (s *TaskStatusService) Update(id uint64, input dto.TaskStatusUpdateDTO) (*models.TaskStatus, error) {
	status, err := s.statusRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to find status: %w", err)
	}

	if input.Slug.Set {
		if !input.Slug.Valid {
			return nil, ErrSlugRequired
		}
		if input.Slug.Value != status.Slug {
			if _, err := s.statusRepo.FindBySlug(input.Slug.Value); err == nil {
				return nil, ErrSlugTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check slug: %w", err)
			}
			status.Slug = input.Slug.Value
		}
	}
	if input.Name.Set {
		if !input.Name.Valid {
			return nil, ErrStatusNameNull
		}
		status.Name = input.Name.Value
	}

	if err := s.statusRepo.Update(status); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return status, nil
}

// Delete refuses while any task references the status.
func (s *TaskStatusService) Delete(id uint64) error {
	if _, err := s.statusRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStatusNotFound
		}
		return fmt.Errorf("failed to find status: %w", err)
	}

	inUse, err := s.taskRepo.ExistsByStatusID(id)
	if err != nil {
		return fmt.Errorf("failed to check referencing tasks: %w", err)
	}
	if inUse {
		return ErrStatusInUse
	}

	if err := s.statusRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete status: %w", err)
	}
	return nil
}

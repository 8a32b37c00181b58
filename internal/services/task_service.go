package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-manager/internal/dto"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrStatusRequired   = errors.New("status cannot be null")
	ErrAssigneeNotFound = errors.New("assignee does not exist")
	ErrUnknownLabel     = errors.New("one or more labels do not exist")
)

var taskPreloads = []string{"Status", "Labels", "Assignee"}

// TaskService handles task business logic. Status slugs, assignee ids and
// label ids arriving from the outside are resolved against their stores at
// write time; unresolved references abort the operation.
type TaskService struct {
	taskRepo   repository.TaskRepository
	statusRepo repository.TaskStatusRepository
	userRepo   repository.UserRepository
	labelRepo  repository.LabelRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepo repository.TaskRepository,
	statusRepo repository.TaskStatusRepository,
	userRepo repository.UserRepository,
	labelRepo repository.LabelRepository,
) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		statusRepo: statusRepo,
		userRepo:   userRepo,
		labelRepo:  labelRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title      string
	Index      *int64
	Content    string
	StatusSlug string
	AssigneeID *uint64
	LabelIDs   []uint64
}

// List returns the tasks matching every supplied criterion.
func (s *TaskService) List(filter repository.TaskFilter) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetByID(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	status, err := s.resolveStatus(input.StatusSlug)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        input.Title,
		Description: input.Content,
		Index:       input.Index,
		StatusID:    status.ID,
	}

	if input.AssigneeID != nil {
		if err := s.ensureUserExists(*input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
	}

	if len(input.LabelIDs) > 0 {
		labels, err := s.resolveLabels(input.LabelIDs)
		if err != nil {
			return nil, err
		}
		task.Labels = labels
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// Update applies a partial update. Absent fields preserve stored values.
// Explicit null clears description, index, assignee and labels; title and
// status are required columns, so null there is rejected.
func (s *TaskService) Update(id uint64, input dto.TaskUpdateDTO) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title.Set {
		if !input.Title.Valid || strings.TrimSpace(input.Title.Value) == "" {
			return nil, ErrTitleRequired
		}
		task.Name = input.Title.Value
	}
	if input.Content.Set {
		task.Description = input.Content.Value // zero value clears on explicit null
	}
	if input.Index.Set {
		if input.Index.Valid {
			idx := input.Index.Value
			task.Index = &idx
		} else {
			task.Index = nil
		}
	}
	if input.Status.Set {
		if !input.Status.Valid {
			return nil, ErrStatusRequired
		}
		status, err := s.resolveStatus(input.Status.Value)
		if err != nil {
			return nil, err
		}
		task.StatusID = status.ID
	}
	if input.AssigneeID.Set {
		if input.AssigneeID.Valid {
			if err := s.ensureUserExists(input.AssigneeID.Value); err != nil {
				return nil, err
			}
			assigneeID := input.AssigneeID.Value
			task.AssigneeID = &assigneeID
		} else {
			task.AssigneeID = nil
		}
	}

	// Labels are resolved before anything is written; an unknown id aborts
	// the whole update.
	var labels *[]models.Label
	if input.LabelIDs.Set {
		resolved := []models.Label{}
		if input.LabelIDs.Valid {
			resolved, err = s.resolveLabels(input.LabelIDs.Value)
			if err != nil {
				return nil, err
			}
		}
		labels = &resolved
	}

	if err := s.taskRepo.Update(task, labels); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

func (s *TaskService) Delete(id uint64) error {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) resolveStatus(slug string) (*models.TaskStatus, error) {
	status, err := s.statusRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to resolve status slug: %w", err)
	}
	return status, nil
}

func (s *TaskService) ensureUserExists(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to resolve assignee: %w", err)
	}
	return nil
}

func (s *TaskService) resolveLabels(ids []uint64) ([]models.Label, error) {
	labels, err := s.labelRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve labels: %w", err)
	}
	if len(labels) != len(uniqueIDs(ids)) {
		return nil, ErrUnknownLabel
	}
	return labels, nil
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yukikurage/task-manager/internal/dto"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/repository"
	"gorm.io/gorm"
)

const (
	minLabelNameLength = 3
	maxLabelNameLength = 1000
)

var (
	ErrLabelNotFound    = errors.New("label not found")
	ErrLabelNameTaken   = errors.New("label name already exists")
	ErrLabelNameInvalid = fmt.Errorf("label name must be %d to %d characters", minLabelNameLength, maxLabelNameLength)
	ErrLabelInUse       = errors.New("cannot delete label: it is used in tasks")
)

// LabelService handles label business logic.
type LabelService struct {
	labelRepo repository.LabelRepository
	taskRepo  repository.TaskRepository
}

// NewLabelService creates a new LabelService.
func NewLabelService(labelRepo repository.LabelRepository, taskRepo repository.TaskRepository) *LabelService {
	return &LabelService{
		labelRepo: labelRepo,
		taskRepo:  taskRepo,
	}
}

func (s *LabelService) GetAll() ([]models.Label, error) {
	labels, err := s.labelRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

func (s *LabelService) GetByID(id uint64) (*models.Label, error) {
	label, err := s.labelRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to find label: %w", err)
	}
	return label, nil
}

func (s *LabelService) Create(name string) (*models.Label, error) {
	if !validLabelName(name) {
		return nil, ErrLabelNameInvalid
	}

	label := &models.Label{Name: name}
	if err := s.labelRepo.Create(label); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLabelNameTaken
		}
		return nil, fmt.Errorf("failed to create label: %w", err)
	}

	return label, nil
}

func (s *LabelService) Update(id uint64, input dto.LabelUpdateDTO) (*models.Label, error) {
	label, err := s.labelRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to find label: %w", err)
	}

	if input.Name.Set {
		if !input.Name.Valid || !validLabelName(input.Name.Value) {
			return nil, ErrLabelNameInvalid
		}
		label.Name = input.Name.Value
	}

	if err := s.labelRepo.Update(label); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLabelNameTaken
		}
		return nil, fmt.Errorf("failed to update label: %w", err)
	}

	return label, nil
}

// Delete refuses while any task carries the label.
func (s *LabelService) Delete(id uint64) error {
	if _, err := s.labelRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLabelNotFound
		}
		return fmt.Errorf("failed to find label: %w", err)
	}

	inUse, err := s.taskRepo.ExistsByLabelID(id)
	if err != nil {
		return fmt.Errorf("failed to check referencing tasks: %w", err)
	}
	if inUse {
		return ErrLabelInUse
	}

	if err := s.labelRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

func validLabelName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= minLabelNameLength && n <= maxLabelNameLength
}

package repository

import (
	"github.com/yukikurage/task-manager/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindAll retrieves all users
	FindAll() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete removes a user
	Delete(id uint64) error
}

// TaskStatusRepository defines the interface for task status data access
type TaskStatusRepository interface {
	Create(status *models.TaskStatus) error
	FindByID(id uint64) (*models.TaskStatus, error)
	FindBySlug(slug string) (*models.TaskStatus, error)
	FindAll() ([]models.TaskStatus, error)
	Update(status *models.TaskStatus) error
	Delete(id uint64) error
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	Create(label *models.Label) error
	FindByID(id uint64) (*models.Label, error)
	FindByName(name string) (*models.Label, error)

	// FindByIDs returns the labels matching the given ids; callers compare
	// lengths to detect ids that resolve to nothing.
	FindByIDs(ids []uint64) ([]models.Label, error)

	FindAll() ([]models.Label, error)
	Update(label *models.Label) error
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task along with its label associations
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves the tasks matching every supplied filter criterion
	List(filter TaskFilter) ([]models.Task, error)

	// Update persists the task's scalar columns and, when labels is non-nil,
	// replaces its label set in the same transaction
	Update(task *models.Task, labels *[]models.Label) error

	// Delete removes a task and its label associations
	Delete(id uint64) error

	// ExistsByAssigneeID reports whether any task is assigned to the user
	ExistsByAssigneeID(userID uint64) (bool, error)

	// ExistsByStatusID reports whether any task references the status
	ExistsByStatusID(statusID uint64) (bool, error)

	// ExistsByLabelID reports whether any task carries the label
	ExistsByLabelID(labelID uint64) (bool, error)
}

// TaskFilter holds the optional listing criteria. Nil fields impose no
// constraint; supplied fields are combined with AND.
type TaskFilter struct {
	TitleCont  *string
	AssigneeID *uint64
	StatusSlug *string
	LabelID    *uint64
}

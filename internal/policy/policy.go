// Package policy holds the ownership predicates evaluated against the
// authenticated principal. They are kept apart from the entity services so
// ownership rules can be tested without touching write paths.
package policy

import (
	"errors"
	"fmt"

	"github.com/yukikurage/task-manager/internal/repository"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned by IsTaskAssignee for a missing task. A
// missing resource is a distinct condition from "not the owner" and must not
// collapse into a silent false.
var ErrTaskNotFound = errors.New("task not found")

// Policy answers ownership questions about the current principal.
type Policy struct {
	taskRepo repository.TaskRepository
}

// New creates a Policy backed by the given task store.
func New(taskRepo repository.TaskRepository) *Policy {
	return &Policy{taskRepo: taskRepo}
}

// IsSelf reports whether the principal is operating on their own profile.
func (p *Policy) IsSelf(principalID, targetUserID uint64) bool {
	return principalID == targetUserID
}

// IsTaskAssignee reports whether the principal is the assignee of the task.
// An unassigned task yields false; a missing task yields ErrTaskNotFound.
func (p *Policy) IsTaskAssignee(principalID, taskID uint64) (bool, error) {
	task, err := p.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrTaskNotFound
		}
		return false, fmt.Errorf("failed to load task: %w", err)
	}

	if task.AssigneeID == nil {
		return false, nil
	}
	return *task.AssigneeID == principalID, nil
}

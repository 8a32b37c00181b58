package dto

import (
	"time"

	"github.com/yukikurage/task-manager/internal/models"
)

// TaskDTO represents a task in API responses. External field names differ
// from storage: title/content map to name/description, status carries the
// status slug rather than its id.
type TaskDTO struct {
	ID         uint64    `json:"id"`
	Index      *int64    `json:"index"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	AssigneeID *uint64   `json:"assignee_id"`
	LabelIDs   []uint64  `json:"taskLabelIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

type TaskCreateDTO struct {
	Title      string   `json:"title" binding:"required"`
	Index      *int64   `json:"index"`
	Content    string   `json:"content"`
	Status     string   `json:"status" binding:"required"`
	AssigneeID *uint64  `json:"assignee_id"`
	LabelIDs   []uint64 `json:"taskLabelIds"`
}

type TaskUpdateDTO struct {
	Title      Optional[string]   `json:"title"`
	Index      Optional[int64]    `json:"index"`
	Content    Optional[string]   `json:"content"`
	Status     Optional[string]   `json:"status"`
	AssigneeID Optional[uint64]   `json:"assignee_id"`
	LabelIDs   Optional[[]uint64] `json:"taskLabelIds"`
}

// ToTaskDTO converts a Task model to TaskDTO. Status and Labels must be
// preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	labelIDs := make([]uint64, len(task.Labels))
	for i, label := range task.Labels {
		labelIDs[i] = label.ID
	}

	return TaskDTO{
		ID:         task.ID,
		Index:      task.Index,
		Title:      task.Name,
		Content:    task.Description,
		Status:     task.Status.Slug,
		AssigneeID: task.AssigneeID,
		LabelIDs:   labelIDs,
		CreatedAt:  task.CreatedAt,
	}
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

package dto

import (
	"time"

	"github.com/yukikurage/task-manager/internal/models"
)

// TaskStatusDTO represents a task status in API responses
type TaskStatusDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

type TaskStatusCreateDTO struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type TaskStatusUpdateDTO struct {
	Name Optional[string] `json:"name"`
	Slug Optional[string] `json:"slug"`
}

// ToTaskStatusDTO converts a TaskStatus model to TaskStatusDTO
func ToTaskStatusDTO(status models.TaskStatus) TaskStatusDTO {
	return TaskStatusDTO{
		ID:        status.ID,
		Name:      status.Name,
		Slug:      status.Slug,
		CreatedAt: status.CreatedAt,
	}
}

// ToTaskStatusDTOs converts a slice of TaskStatus models
func ToTaskStatusDTOs(statuses []models.TaskStatus) []TaskStatusDTO {
	dtos := make([]TaskStatusDTO, len(statuses))
	for i, status := range statuses {
		dtos[i] = ToTaskStatusDTO(status)
	}
	return dtos
}

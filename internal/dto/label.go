package dto

import (
	"time"

	"github.com/yukikurage/task-manager/internal/models"
)

// LabelDTO represents a label in API responses
type LabelDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type LabelCreateDTO struct {
	Name string `json:"name" binding:"required,min=3,max=1000"`
}

type LabelUpdateDTO struct {
	Name Optional[string] `json:"name"`
}

// ToLabelDTO converts a Label model to LabelDTO
func ToLabelDTO(label models.Label) LabelDTO {
	return LabelDTO{
		ID:        label.ID,
		Name:      label.Name,
		CreatedAt: label.CreatedAt,
	}
}

// ToLabelDTOs converts a slice of Label models
func ToLabelDTOs(labels []models.Label) []LabelDTO {
	dtos := make([]LabelDTO, len(labels))
	for i, label := range labels {
		dtos[i] = ToLabelDTO(label)
	}
	return dtos
}

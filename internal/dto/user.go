package dto

import (
	"time"

	"github.com/yukikurage/task-manager/internal/models"
)

// UserDTO represents a user in API responses. The password hash never
// leaves the service.
type UserDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserCreateDTO is the self-registration payload
type UserCreateDTO struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=3"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UserUpdateDTO is the partial-update payload; absent fields preserve the
// stored values
type UserUpdateDTO struct {
	Email     Optional[string] `json:"email"`
	Password  Optional[string] `json:"password"`
	FirstName Optional[string] `json:"firstName"`
	LastName  Optional[string] `json:"lastName"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

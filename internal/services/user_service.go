package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-manager/internal/dto"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 3

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already exists")
	ErrEmailRequired        = errors.New("email cannot be null")
	ErrPasswordRequired     = errors.New("password cannot be null")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserHasTasks         = errors.New("cannot delete user: they are assigned to tasks")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles user business logic.
type UserService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, taskRepo repository.TaskRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// CreateUserInput represents the required information to register a user.
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (s *UserService) GetAll() ([]models.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetByID(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Create registers a new user. The email pre-check is a fast path only; the
// unique index on users.email is the authoritative guard, so a duplicate-key
// error from a concurrent insert maps to the same ErrEmailTaken.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Update applies a partial update. Absent fields preserve the stored values;
// explicit null email or password is rejected because those columns are
// required.
func (s *UserService) Update(id uint64, input dto.UserUpdateDTO) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Email.Set {
		if !input.Email.Valid {
			return nil, ErrEmailRequired
		}
		email := strings.TrimSpace(input.Email.Value)
		if email != user.Email {
			if _, err := s.userRepo.FindByEmail(email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}
	if input.Password.Set {
		if !input.Password.Valid {
			return nil, ErrPasswordRequired
		}
		if len(input.Password.Value) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password.Value), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}
	if input.FirstName.Set {
		user.FirstName = input.FirstName.Value
	}
	if input.LastName.Set {
		user.LastName = input.LastName.Value
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user unless they are still assigned to at least one task.
func (s *UserService) Delete(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	inUse, err := s.taskRepo.ExistsByAssigneeID(id)
	if err != nil {
		return fmt.Errorf("failed to check task assignments: %w", err)
	}
	if inUse {
		return ErrUserHasTasks
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

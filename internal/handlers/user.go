package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/dto"
	apierrors "github.com/yukikurage/task-manager/internal/errors"
	"github.com/yukikurage/task-manager/internal/middleware"
	"github.com/yukikurage/task-manager/internal/policy"
	"github.com/yukikurage/task-manager/internal/services"
)

// UserHandler coordinates user CRUD. Registration and reads are open;
// mutations are restricted to the profile owner.
type UserHandler struct {
	userService *services.UserService
	policy      *policy.Policy
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, policy *policy.Policy) *UserHandler {
	return &UserHandler{
		userService: userService,
		policy:      policy,
	}
}

// List returns all users with an X-Total-Count header.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.GetAll()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	dtos := dto.ToUserDTOs(users)
	c.Header("X-Total-Count", strconv.Itoa(len(dtos)))
	c.JSON(http.StatusOK, dtos)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Create registers a new user. No authentication required.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Update applies a partial update to the principal's own profile.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	principal, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "authentication required")
		return
	}
	if !h.policy.IsSelf(principal.ID, id) {
		apierrors.Forbidden(c, "You can only modify your own profile")
		return
	}

	var req dto.UserUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	user, err := h.userService.Update(id, req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Delete removes the principal's own profile unless tasks still reference it.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	principal, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "authentication required")
		return
	}
	if !h.policy.IsSelf(principal.ID, id) {
		apierrors.Forbidden(c, "You can only delete your own profile")
		return
	}

	if err := h.userService.Delete(id); err != nil {
		respondUserError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserHasTasks):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.ValidationFailed(c, []string{err.Error()})
	default:
		apierrors.InternalError(c, "")
	}
}

// parseID extracts the numeric :id path parameter, writing a 400 on failure.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/dto"
	apierrors "github.com/yukikurage/task-manager/internal/errors"
	"github.com/yukikurage/task-manager/internal/services"
)

// TaskStatusHandler coordinates task status CRUD.
type TaskStatusHandler struct {
	statusService *services.TaskStatusService
}

// NewTaskStatusHandler creates a new TaskStatusHandler.
func NewTaskStatusHandler(statusService *services.TaskStatusService) *TaskStatusHandler {
	return &TaskStatusHandler{
		statusService: statusService,
	}
}

func (h *TaskStatusHandler) List(c *gin.Context) {
	statuses, err := h.statusService.GetAll()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	dtos := dto.ToTaskStatusDTOs(statuses)
	c.Header("X-Total-Count", strconv.Itoa(len(dtos)))
	c.JSON(http.StatusOK, dtos)
}

func (h *TaskStatusHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	status, err := h.statusService.GetByID(id)
	if err != nil {
		respondStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskStatusDTO(*status))
}

// GetBySlug looks a status up by its stable external identifier.
func (h *TaskStatusHandler) GetBySlug(c *gin.Context) {
	status, err := h.statusService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskStatusDTO(*status))
}

func (h *TaskStatusHandler) Create(c *gin.Context) {
	var req dto.TaskStatusCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	status, err := h.statusService.Create(services.CreateStatusInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		respondStatusError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskStatusDTO(*status))
}

func (h *TaskStatusHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.TaskStatusUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	status, err := h.statusService.Update(id, req)
	if err != nil {
		respondStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskStatusDTO(*status))
}

func (h *TaskStatusHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.statusService.Delete(id); err != nil {
		respondStatusError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondStatusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrStatusNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSlugTaken),
		errors.Is(err, services.ErrStatusInUse):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrSlugRequired),
		errors.Is(err, services.ErrStatusNameNull):
		apierrors.ValidationFailed(c, []string{err.Error()})
	default:
		apierrors.InternalError(c, "")
	}
}

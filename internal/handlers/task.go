package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/dto"
	apierrors "github.com/yukikurage/task-manager/internal/errors"
	"github.com/yukikurage/task-manager/internal/repository"
	"github.com/yukikurage/task-manager/internal/services"
)

// TaskHandler coordinates task CRUD and filtered listings.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// List returns the tasks matching the optional query filters titleCont,
// assigneeId, status and labelId. Supplied filters are combined with AND; no
// filters returns the full collection.
func (h *TaskHandler) List(c *gin.Context) {
	filter, ok := parseTaskFilter(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	dtos := dto.ToTaskDTOs(tasks)
	c.Header("X-Total-Count", strconv.Itoa(len(dtos)))
	c.JSON(http.StatusOK, dtos)
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.TaskCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:      req.Title,
		Index:      req.Index,
		Content:    req.Content,
		StatusSlug: req.Status,
		AssigneeID: req.AssigneeID,
		LabelIDs:   req.LabelIDs,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.TaskUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	task, err := h.taskService.Update(id, req)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseTaskFilter(c *gin.Context) (repository.TaskFilter, bool) {
	var filter repository.TaskFilter

	if v, ok := c.GetQuery("titleCont"); ok {
		filter.TitleCont = &v
	}
	if v, ok := c.GetQuery("status"); ok {
		filter.StatusSlug = &v
	}
	if v, ok := c.GetQuery("assigneeId"); ok {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assigneeId")
			return filter, false
		}
		filter.AssigneeID = &id
	}
	if v, ok := c.GetQuery("labelId"); ok {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid labelId")
			return filter, false
		}
		filter.LabelID = &id
	}

	return filter, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrStatusNotFound),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrUnknownLabel),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrStatusRequired):
		apierrors.ValidationFailed(c, []string{err.Error()})
	default:
		apierrors.InternalError(c, "")
	}
}

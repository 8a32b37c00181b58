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

// LabelHandler coordinates label CRUD.
type LabelHandler struct {
	labelService *services.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

func (h *LabelHandler) List(c *gin.Context) {
	labels, err := h.labelService.GetAll()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	dtos := dto.ToLabelDTOs(labels)
	c.Header("X-Total-Count", strconv.Itoa(len(dtos)))
	c.JSON(http.StatusOK, dtos)
}

func (h *LabelHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	label, err := h.labelService.GetByID(id)
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

func (h *LabelHandler) Create(c *gin.Context) {
	var req dto.LabelCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	label, err := h.labelService.Create(req.Name)
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLabelDTO(*label))
}

func (h *LabelHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.LabelUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	label, err := h.labelService.Update(id, req)
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

func (h *LabelHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.labelService.Delete(id); err != nil {
		respondLabelError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondLabelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLabelNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrLabelNameTaken),
		errors.Is(err, services.ErrLabelInUse):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrLabelNameInvalid):
		apierrors.ValidationFailed(c, []string{err.Error()})
	default:
		apierrors.InternalError(c, "")
	}
}

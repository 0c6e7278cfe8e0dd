package task

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dmc0125/task-app/internal/api"
	"github.com/Dmc0125/task-app/internal/logger"
	"github.com/Dmc0125/task-app/internal/middleware"
	"github.com/Dmc0125/task-app/internal/validate"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/task", h.create)
}

type createRequest struct {
	TaskGroupID int64   `json:"task_group_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	LabelsIDs   []int64 `json:"labels_ids"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Len(req.Title, 1, 50, "Title"); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Len(req.Description, 1, 255, "Description"); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.store.Create(
		c.Request.Context(), middleware.UserID(c),
		req.TaskGroupID, req.Title, req.Description, req.LabelsIDs,
	)

	if errors.Is(err, ErrGroupNotFound) {
		api.Error(c, http.StatusNotFound, fmt.Sprintf(
			"Could not create task in task group with id %d, task group does not exist", req.TaskGroupID,
		))
		return
	}
	var missing *MissingLabelsError
	if errors.As(err, &missing) {
		api.Error(c, http.StatusConflict, missingLabelsMsg(missing.IDs))
		return
	}
	if err != nil {
		logger.Error("create task failed", map[string]any{"error": err.Error()})
		api.Error(c, http.StatusInternalServerError, api.MsgUnknownError)
		return
	}

	api.OK(c, http.StatusOK, created)
}

func missingLabelsMsg(ids []int64) string {
	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%d, ", id)
	}
	return fmt.Sprintf("Could not create task with labels ids %slabels do not exist", b.String())
}

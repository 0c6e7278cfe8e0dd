package taskgroup

import (
	"errors"
	"fmt"
	"net/http"

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
	r.POST("/task-group", h.create)
	r.PATCH("/task-group/:id", h.rename)
	r.DELETE("/task-group/:id", h.delete)
}

type createRequest struct {
	WorkspaceID int64  `json:"workspace_id"`
	Title       string `json:"title"`
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

	err := h.store.Create(c.Request.Context(), middleware.UserID(c), req.WorkspaceID, req.Title)
	if errors.Is(err, ErrWorkspaceNotFound) {
		api.Error(c, http.StatusNotFound, fmt.Sprintf(
			"Workspace with id %d does not exist", req.WorkspaceID,
		))
		return
	}
	if err != nil {
		h.serverError(c, "create task group", err)
		return
	}
	api.OK(c, http.StatusOK, gin.H{"title": req.Title})
}

type renameRequest struct {
	Title string `json:"title"`
}

func (h *Handler) rename(c *gin.Context) {
	id, ok := api.ParamID(c)
	if !ok {
		return
	}

	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Len(req.Title, 1, 50, "Title"); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.store.Rename(c.Request.Context(), middleware.UserID(c), id, req.Title)
	if errors.Is(err, ErrNotFound) {
		api.Error(c, http.StatusNotFound, fmt.Sprintf("Task group with id %d does not exist", id))
		return
	}
	if err != nil {
		h.serverError(c, "rename task group", err)
		return
	}
	api.OK(c, http.StatusOK, gin.H{"title": req.Title})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := api.ParamID(c)
	if !ok {
		return
	}

	err := h.store.Delete(c.Request.Context(), middleware.UserID(c), id)
	if errors.Is(err, ErrNotFound) {
		api.Error(c, http.StatusNotFound, fmt.Sprintf("Task group with id %d does not exist", id))
		return
	}
	if err != nil {
		h.serverError(c, "delete task group", err)
		return
	}
	api.OK(c, http.StatusOK, nil)
}

func (h *Handler) serverError(c *gin.Context, op string, err error) {
	logger.Error(op+" failed", map[string]any{"error": err.Error()})
	api.Error(c, http.StatusInternalServerError, api.MsgUnknownError)
}

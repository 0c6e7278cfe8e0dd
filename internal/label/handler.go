package label

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dmc0125/task-app/internal/api"
	"github.com/Dmc0125/task-app/internal/logger"
	"github.com/Dmc0125/task-app/internal/middleware"
	"github.com/Dmc0125/task-app/internal/validate"
)

// colorPattern accepts lowercase 3 or 6 digit hex colors with a leading #.
var colorPattern = regexp.MustCompile(`^(#([0-9a-f]{3}){1,2})$`)

// normalizeColor lowercases the input and validates it as a hex color.
func normalizeColor(c *gin.Context, color string) (string, bool) {
	lower := strings.ToLower(color)
	if !colorPattern.MatchString(lower) {
		api.Error(c, http.StatusUnprocessableEntity,
			fmt.Sprintf("Color %s is not a valid hex color (#123abc)", lower))
		return "", false
	}
	return lower, true
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/label", h.create)
	r.PATCH("/label/:id", h.update)
	r.DELETE("/label/:id", h.delete)
}

type createRequest struct {
	WorkspaceID int64   `json:"workspace_id"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Description != nil {
		if err := validate.Len(*req.Description, 1, 30, "Description"); err != nil {
			api.Error(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	color, ok := normalizeColor(c, req.Color)
	if !ok {
		return
	}

	id, err := h.store.Create(c.Request.Context(), middleware.UserID(c), req.WorkspaceID, color, req.Description)
	if errors.Is(err, ErrWorkspaceNotFound) {
		api.Error(c, http.StatusBadRequest, fmt.Sprintf(
			"Could not create label with workspace id %d, workspace does not exist", req.WorkspaceID,
		))
		return
	}
	if err != nil {
		h.serverError(c, "create label", err)
		return
	}

	api.OK(c, http.StatusOK, Label{
		ID:          id,
		WorkspaceID: req.WorkspaceID,
		Color:       color,
		Description: req.Description,
	})
}

type updateRequest struct {
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

func (h *Handler) update(c *gin.Context) {
	id, ok := api.ParamID(c)
	if !ok {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Color == nil && req.Description == nil {
		api.Error(c, http.StatusBadRequest, "Either color or description has to be provided")
		return
	}

	if req.Color != nil {
		color, ok := normalizeColor(c, *req.Color)
		if !ok {
			return
		}
		req.Color = &color
	}
	if req.Description != nil {
		if err := validate.Len(*req.Description, 1, 30, "Description"); err != nil {
			api.Error(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	updated, err := h.store.Update(c.Request.Context(), middleware.UserID(c), id, Update{
		Color:       req.Color,
		Description: req.Description,
	})
	if errors.Is(err, ErrNotFound) {
		api.Error(c, http.StatusNotFound, fmt.Sprintf("Label with id %d does not exist", id))
		return
	}
	if err != nil {
		h.serverError(c, "update label", err)
		return
	}

	api.OK(c, http.StatusOK, gin.H{
		"workspace_id": updated.WorkspaceID,
		"color":        updated.Color,
		"description":  updated.Description,
	})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := api.ParamID(c)
	if !ok {
		return
	}

	err := h.store.Delete(c.Request.Context(), middleware.UserID(c), id)
	if errors.Is(err, ErrNotFound) {
		api.Error(c, http.StatusNotFound, fmt.Sprintf(
			"Could not delete label with id %d, label does not exist", id,
		))
		return
	}
	if err != nil {
		h.serverError(c, "delete label", err)
		return
	}
	api.OK(c, http.StatusOK, nil)
}

func (h *Handler) serverError(c *gin.Context, op string, err error) {
	logger.Error(op+" failed", map[string]any{"error": err.Error()})
	api.Error(c, http.StatusInternalServerError, api.MsgUnknownError)
}

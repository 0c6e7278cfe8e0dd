package workspace

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
	r.POST("/workspace", h.create)
	r.GET("/workspace", h.list)
	r.GET("/workspace/:id", h.get)
	r.PATCH("/workspace/:id", h.update)
	r.DELETE("/workspace/:id", h.delete)
}

type createRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
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
	if req.Description != nil {
		if err := validate.Len(*req.Description, 1, 255, "Description"); err != nil {
			api.Error(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	w, err := h.store.Create(c.Request.Context(), middleware.UserID(c), req.Title, req.Description)
	if err != nil {
		h.serverError(c, "create workspace", err)
		return
	}
	api.OK(c, http.StatusOK, w)
}

func (h *Handler) list(c *gin.Context) {
	workspaces, err := h.store.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.serverError(c, "list workspaces", err)
		return
	}
	api.OK(c, http.StatusOK, workspaces)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := api.ParamID(c)
	if !ok {
		return
	}

	detail, err := h.store.Get(c.Request.Context(), middleware.UserID(c), id)
	if errors.Is(err, ErrNotFound) {
		api.Error(c, http.StatusNotFound, notFoundMsg(id))
		return
	}
	if err != nil {
		h.serverError(c, "get workspace", err)
		return
	}
	api.OK(c, http.StatusOK, detail)
}

type updateRequest struct {
	Title       *string `json:"title"`
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
	if req.Title == nil && req.Description == nil {
		api.Error(c, http.StatusBadRequest, "Either title or description has to be provided")
		return
	}

	if req.Title != nil {
		if err := validate.Len(*req.Title, 1, 50, "Title"); err != nil {
			api.Error(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Description != nil {
		// Zero length is allowed and clears the description.
		if err := validate.Len(*req.Description, 0, 255, "Description"); err != nil {
			api.Error(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	err := h.store.Update(c.Request.Context(), middleware.UserID(c), id, Update{
		Title:       req.Title,
		Description: req.Description,
	})
	if errors.Is(err, ErrNotFound) {
		api.Error(c, http.StatusNotFound, notFoundMsg(id))
		return
	}
	if err != nil {
		h.serverError(c, "update workspace", err)
		return
	}

	api.OK(c, http.StatusOK, gin.H{
		"id":          id,
		"title":       req.Title,
		"description": req.Description,
	})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := api.ParamID(c)
	if !ok {
		return
	}

	err := h.store.Delete(c.Request.Context(), middleware.UserID(c), id)
	if errors.Is(err, ErrNotFound) {
		api.Error(c, http.StatusNotFound, notFoundMsg(id))
		return
	}
	if err != nil {
		h.serverError(c, "delete workspace", err)
		return
	}
	api.OK(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) serverError(c *gin.Context, op string, err error) {
	logger.Error(op+" failed", map[string]any{"error": err.Error()})
	api.Error(c, http.StatusInternalServerError, api.MsgUnknownError)
}

func notFoundMsg(id int64) string {
	return fmt.Sprintf("Workspace with id %d does not exist", id)
}

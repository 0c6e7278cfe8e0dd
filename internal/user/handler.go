package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dmc0125/task-app/internal/api"
	"github.com/Dmc0125/task-app/internal/logger"
	"github.com/Dmc0125/task-app/internal/middleware"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/user", h.get)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserID(c)

	profile, err := h.store.DefaultProfile(c.Request.Context(), userID)
	if err != nil {
		// A signed credential implies the user exists, so a miss here is
		// an internal inconsistency, not a client error.
		logger.Error("user profile lookup failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		api.Error(c, http.StatusInternalServerError, api.MsgUnknownError)
		return
	}

	api.OK(c, http.StatusOK, profile)
}

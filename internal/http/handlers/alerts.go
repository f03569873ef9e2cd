package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hongminglow/bank-console/internal/alerts"
	"github.com/hongminglow/bank-console/internal/http/respond"
)

// AlertHandler lets a view poll or dismiss its form's alert.
type AlertHandler struct {
	boards *alerts.Registry
}

func NewAlertHandler(boards *alerts.Registry) *AlertHandler {
	return &AlertHandler{boards: boards}
}

func (h *AlertHandler) Register(r gin.IRoutes) {
	r.GET("/alerts/:form", h.current)
	r.DELETE("/alerts/:form", h.dismiss)
}

func (h *AlertHandler) current(c *gin.Context) {
	board := h.boards.For(currentSession(c).ID, c.Param("form"))
	alert, ok := board.Current()
	if !ok {
		respond.JSON(c, http.StatusOK, "no active alert", nil)
		return
	}
	respond.WithAlert(c, http.StatusOK, alert, nil)
}

func (h *AlertHandler) dismiss(c *gin.Context) {
	h.boards.For(currentSession(c).ID, c.Param("form")).Clear()
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hongminglow/bank-console/internal/alerts"
	"github.com/hongminglow/bank-console/internal/http/respond"
	"github.com/hongminglow/bank-console/internal/middleware"
	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/models/dto"
	"github.com/hongminglow/bank-console/internal/profile"
	"github.com/hongminglow/bank-console/internal/session"
)

const profileForm = "profile"

// ProfileHandler lets a signed-in user view and change their profile.
// Customers file requests; admins edit their own record directly.
type ProfileHandler struct {
	workflow *profile.Workflow
	sessions *session.Manager
	boards   *alerts.Registry
	logger   *zap.Logger
}

func NewProfileHandler(workflow *profile.Workflow, sessions *session.Manager, boards *alerts.Registry, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{workflow: workflow, sessions: sessions, boards: boards, logger: logger}
}

// Register attaches the profile routes; any signed-in user may use them.
func (h *ProfileHandler) Register(r gin.IRoutes) {
	r.GET("/profile", h.get)
	r.PUT("/profile", h.update)
	r.GET("/profile/requests", h.mine)
}

func (h *ProfileHandler) get(c *gin.Context) {
	respond.JSON(c, http.StatusOK, "ok", currentSession(c).Identity)
}

func (h *ProfileHandler) update(c *gin.Context) {
	var form dto.ProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	sess := currentSession(c)
	board := h.boards.For(sess.ID, profileForm)
	current, err := h.workflow.Current(c.Request.Context(), sess)
	if err != nil {
		h.logger.Warn("load live profile; comparing against session", zap.String("session", sess.ID), zap.Error(err))
		current = sess.Identity.Profile()
	}
	requested := form.Apply(current)

	if sess.IsAdmin() {
		h.updateDirect(c, board, sess, current, requested)
		return
	}

	req, err := h.workflow.Submit(c.Request.Context(), sess, current, requested)
	if err != nil {
		h.refuse(c, board, err, "Failed to submit update request")
		return
	}
	alert := board.Success("Profile update request submitted successfully! Waiting for admin approval.")
	respond.WithAlert(c, http.StatusCreated, alert, req)
}

func (h *ProfileHandler) updateDirect(c *gin.Context, board *alerts.Board, sess session.Session, current, requested models.Profile) {
	updated, err := h.workflow.DirectUpdate(c.Request.Context(), sess, sess.Identity.CustomerID, current, requested)
	if err != nil {
		h.refuse(c, board, err, "Failed to update profile")
		return
	}
	refreshed, err := h.sessions.UpdateIdentity(c.Request.Context(), sess, updated)
	if err != nil {
		// the backend already holds the change; the next login picks it up
		h.logger.Warn("refresh session identity", zap.String("session", sess.ID), zap.Error(err))
	} else {
		middleware.SetSession(c, refreshed)
	}
	alert := board.Success("Profile updated successfully!")
	respond.WithAlert(c, http.StatusOK, alert, updated)
}

// refuse reports a no-op submission as a warning and anything else as an
// error on the profile form.
func (h *ProfileHandler) refuse(c *gin.Context, board *alerts.Board, err error, message string) {
	if errors.Is(err, profile.ErrNoChanges) {
		respond.WithAlert(c, http.StatusUnprocessableEntity, board.Warn(profile.NoChangesMessage), nil)
		return
	}
	failOn(c, board, err, message)
}

func (h *ProfileHandler) mine(c *gin.Context) {
	sess := currentSession(c)
	if sess.IsAdmin() {
		respond.JSON(c, http.StatusOK, "ok", []models.ProfileUpdateRequest{})
		return
	}
	requests, err := h.workflow.ListMine(c.Request.Context(), sess)
	if err != nil {
		fail(c, err, "Failed to load update requests")
		return
	}
	respond.JSON(c, http.StatusOK, "ok", requests)
}

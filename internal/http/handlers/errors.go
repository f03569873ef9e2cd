package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hongminglow/bank-console/internal/alerts"
	"github.com/hongminglow/bank-console/internal/gateway"
	"github.com/hongminglow/bank-console/internal/http/respond"
	"github.com/hongminglow/bank-console/internal/intake"
	"github.com/hongminglow/bank-console/internal/middleware"
	"github.com/hongminglow/bank-console/internal/paging"
	"github.com/hongminglow/bank-console/internal/profile"
	"github.com/hongminglow/bank-console/internal/session"
)

// statusFor maps domain and gateway errors onto console HTTP statuses.
func statusFor(err error) int {
	var verr *intake.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, profile.ErrNoChanges):
		return http.StatusUnprocessableEntity
	case errors.Is(err, intake.ErrBusy),
		errors.Is(err, profile.ErrBusy),
		errors.Is(err, profile.ErrAlreadyDecided):
		return http.StatusConflict
	case errors.Is(err, profile.ErrAdminOnly),
		errors.Is(err, profile.ErrCustomerOnly):
		return http.StatusForbidden
	case errors.Is(err, session.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrMissingCredentials),
		errors.Is(err, session.ErrEmailRequired),
		errors.Is(err, paging.ErrOutOfRange):
		return http.StatusBadRequest
	case gateway.IsNetwork(err):
		return http.StatusBadGateway
	}
	if apiErr, ok := gateway.AsAPIError(err); ok && apiErr.Status >= 400 {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// kindFor classifies err for an alert.
func kindFor(err error) alerts.Kind {
	var verr *intake.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, profile.ErrNoChanges):
		return alerts.KindValidation
	case gateway.IsNetwork(err):
		return alerts.KindNetwork
	}
	return alerts.KindBackend
}

// fail writes err as an envelope. Gateway failures keep the backend's own
// wording; anything else falls back to message.
func fail(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		respond.Error(c, status, message)
		return
	}
	respond.Error(c, status, gateway.Message(err, errorText(err, message)))
}

// failOn records err on a form's board before writing it.
func failOn(c *gin.Context, board *alerts.Board, err error, message string) {
	_ = c.Error(err)
	status := statusFor(err)
	text := message
	if status != http.StatusInternalServerError {
		text = gateway.Message(err, errorText(err, message))
	}
	alert := board.Fail(alerts.SlotGeneral, kindFor(err), text)
	c.Abort()
	respond.WithAlert(c, status, alert, nil)
}

func errorText(err error, fallback string) string {
	if errors.Is(err, profile.ErrNoChanges) {
		return profile.NoChangesMessage
	}
	var verr *intake.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if err != nil && statusFor(err) < http.StatusInternalServerError {
		return err.Error()
	}
	return fallback
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func pageRequest(c *gin.Context) (paging.Request, bool) {
	var req paging.Request
	for name, dst := range map[string]*int{"page": &req.Page, "size": &req.Size} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid "+name)
			return paging.Request{}, false
		}
		*dst = v
	}
	return req.Normalize(), true
}

func currentSession(c *gin.Context) session.Session {
	sess, _ := middleware.CurrentSession(c)
	return sess
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hongminglow/bank-console/internal/alerts"
	"github.com/hongminglow/bank-console/internal/http/respond"
	"github.com/hongminglow/bank-console/internal/intake"
	"github.com/hongminglow/bank-console/internal/models/dto"
)

// TransactionHandler accepts deposit, withdraw and transfer forms.
type TransactionHandler struct {
	desk   *intake.Desk
	boards *alerts.Registry
}

func NewTransactionHandler(desk *intake.Desk, boards *alerts.Registry) *TransactionHandler {
	return &TransactionHandler{desk: desk, boards: boards}
}

// Register attaches the customer-only transaction routes.
func (h *TransactionHandler) Register(r gin.IRoutes) {
	r.POST("/transactions/:kind", h.submit)
}

func (h *TransactionHandler) submit(c *gin.Context) {
	kind, ok := intake.ParseKind(c.Param("kind"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "unknown transaction type")
		return
	}
	var form dto.TransactionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	sess := currentSession(c)
	board := h.boards.For(sess.ID, string(kind))
	res, err := h.desk.Submit(c.Request.Context(), board, ownerOf(sess), kind, intake.Form{
		AccountNumber: form.AccountNumber,
		Amount:        string(form.Amount),
		ToAccount:     form.ToAccount,
	})
	if err != nil {
		if errors.Is(err, intake.ErrBusy) {
			respond.Error(c, http.StatusConflict, "A transaction is already being processed.")
			return
		}
		fail(c, err, "Transaction failed")
		return
	}

	status := http.StatusOK
	switch {
	case !res.Sent:
		status = http.StatusUnprocessableEntity
	case !res.Accepted:
		status = http.StatusBadGateway
		if res.Alert.Kind == alerts.KindBackend {
			status = http.StatusBadRequest
		}
	}
	respond.WithAlert(c, status, res.Alert, res)
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/bank-console/internal/alerts"
	"github.com/hongminglow/bank-console/internal/gateway"
	"github.com/hongminglow/bank-console/internal/http/respond"
	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/models/dto"
	"github.com/hongminglow/bank-console/internal/paging"
	"github.com/hongminglow/bank-console/internal/profile"
	"github.com/hongminglow/bank-console/internal/watchdog"
)

// TimeoutMessage is shown when the admin dashboard does not load in time.
const TimeoutMessage = "Request timed out. Please check if the backend server is running."

const (
	customersForm = "admin-customers"
	requestsForm  = "admin-requests"
)

// AdminHandler serves the admin console.
type AdminHandler struct {
	backend          *gateway.Client
	workflow         *profile.Workflow
	pages            *paging.Tracker
	boards           *alerts.Registry
	dashboardTimeout time.Duration
	logger           *zap.Logger
}

func NewAdminHandler(backend *gateway.Client, workflow *profile.Workflow, pages *paging.Tracker, boards *alerts.Registry, dashboardTimeout time.Duration, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		backend:          backend,
		workflow:         workflow,
		pages:            pages,
		boards:           boards,
		dashboardTimeout: dashboardTimeout,
		logger:           logger,
	}
}

// Register attaches the admin-only routes.
func (h *AdminHandler) Register(r gin.IRoutes) {
	r.GET("/dashboard", h.dashboard)
	r.GET("/customers", h.customers)
	r.POST("/customers", h.createCustomer)
	r.PUT("/customers/:id", h.updateCustomer)
	r.DELETE("/customers/:id", h.deleteCustomer)
	r.POST("/customers/:id/:action", h.lockCustomer)
	r.GET("/transactions", h.transactions)
	r.GET("/profile-requests", h.pending)
	r.POST("/profile-requests/:id/:decision", h.review)
}

type adminDashboard struct {
	Customers       []models.Customer             `json:"customers"`
	Accounts        []models.Account              `json:"accounts"`
	PendingRequests []models.ProfileUpdateRequest `json:"pendingRequests"`
	Warnings        []string                      `json:"warnings,omitempty"`
}

// dashboard loads customers, accounts and pending requests together.
// Customers and accounts are required; pending requests degrade to an
// empty list with a warning.
func (h *AdminHandler) dashboard(c *gin.Context) {
	sess := currentSession(c)
	var view adminDashboard

	err := watchdog.Wait(c.Request.Context(), h.dashboardTimeout, func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			customers, err := h.backend.AdminCustomers(ctx, sess.BackendToken)
			if err != nil {
				return errors.New("Failed to load customers: " + gateway.Message(err, err.Error()))
			}
			view.Customers = customers
			return nil
		})
		g.Go(func() error {
			accounts, err := h.backend.ListAccounts(ctx, sess.BackendToken)
			if err != nil {
				return errors.New("Failed to load accounts: " + gateway.Message(err, err.Error()))
			}
			view.Accounts = accounts
			return nil
		})
		var pending []models.ProfileUpdateRequest
		var pendingErr error
		g.Go(func() error {
			pending, pendingErr = h.workflow.ListPending(ctx, sess)
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}
		if pendingErr != nil {
			h.logger.Warn("load pending profile requests", zap.Error(pendingErr))
			pending = nil
			view.Warnings = append(view.Warnings, "Pending profile requests could not be loaded.")
		}
		view.PendingRequests = pending
		return nil
	})
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, watchdog.ErrTimeout) {
			respond.Retryable(c, http.StatusGatewayTimeout, TimeoutMessage)
			return
		}
		respond.Retryable(c, http.StatusBadGateway, err.Error())
		return
	}
	if view.Customers == nil {
		view.Customers = []models.Customer{}
	}
	if view.Accounts == nil {
		view.Accounts = []models.Account{}
	}
	if view.PendingRequests == nil {
		view.PendingRequests = []models.ProfileUpdateRequest{}
	}
	respond.JSON(c, http.StatusOK, "ok", view)
}

func (h *AdminHandler) customers(c *gin.Context) {
	customers, err := h.backend.AdminCustomers(c.Request.Context(), currentSession(c).BackendToken)
	if err != nil {
		fail(c, err, "Failed to load customers")
		return
	}
	respond.JSON(c, http.StatusOK, "ok", customers)
}

func (h *AdminHandler) createCustomer(c *gin.Context) {
	sess := currentSession(c)
	board := h.boards.For(sess.ID, customersForm)
	var form dto.CustomerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respond.WithAlert(c, http.StatusBadRequest, board.Fail(alerts.SlotGeneral, alerts.KindValidation, "Full name and a valid email are required."), nil)
		return
	}
	created, err := h.backend.CreateCustomer(c.Request.Context(), sess.BackendToken, form)
	if err != nil {
		failOn(c, board, err, "Failed to save customer")
		return
	}
	respond.WithAlert(c, http.StatusCreated, board.Success("Customer created successfully!"), created)
}

func (h *AdminHandler) updateCustomer(c *gin.Context) {
	sess := currentSession(c)
	board := h.boards.For(sess.ID, customersForm)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form dto.CustomerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respond.WithAlert(c, http.StatusBadRequest, board.Fail(alerts.SlotGeneral, alerts.KindValidation, "Full name and a valid email are required."), nil)
		return
	}
	updated, err := h.backend.UpdateCustomer(c.Request.Context(), sess.BackendToken, id, form)
	if err != nil {
		failOn(c, board, err, "Failed to save customer")
		return
	}
	respond.WithAlert(c, http.StatusOK, board.Success("Customer updated successfully!"), updated)
}

func (h *AdminHandler) deleteCustomer(c *gin.Context) {
	sess := currentSession(c)
	board := h.boards.For(sess.ID, customersForm)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	msg, err := h.backend.DeleteCustomer(c.Request.Context(), sess.BackendToken, id)
	if err != nil {
		failOn(c, board, err, "Failed to delete customer")
		return
	}
	if msg == "" {
		msg = "Customer deleted successfully"
	}
	respond.WithAlert(c, http.StatusOK, board.Success(msg), nil)
}

func (h *AdminHandler) lockCustomer(c *gin.Context) {
	sess := currentSession(c)
	board := h.boards.For(sess.ID, customersForm)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var (
		msg string
		err error
	)
	switch c.Param("action") {
	case "lock":
		msg, err = h.backend.LockCustomer(c.Request.Context(), sess.BackendToken, id)
	case "unlock":
		msg, err = h.backend.UnlockCustomer(c.Request.Context(), sess.BackendToken, id)
	default:
		respond.Error(c, http.StatusNotFound, "unknown customer action")
		return
	}
	if err != nil {
		failOn(c, board, err, fmt.Sprintf("Failed to %s customer", c.Param("action")))
		return
	}
	respond.WithAlert(c, http.StatusOK, board.Success(msg), nil)
}

func (h *AdminHandler) transactions(c *gin.Context) {
	sess := currentSession(c)
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	listing := listingKey("admin-transactions", req.Size)
	if err := h.pages.Check(sess.ID, listing, req); err != nil {
		fail(c, err, "invalid page")
		return
	}
	page, err := h.backend.AllTransactions(c.Request.Context(), sess.BackendToken, req.Page, req.Size)
	if err != nil {
		fail(c, err, "Failed to load transactions")
		return
	}
	h.pages.Observe(sess.ID, listing, page.TotalPages)
	respond.JSON(c, http.StatusOK, "ok", withBounds(page, req))
}

func (h *AdminHandler) pending(c *gin.Context) {
	requests, err := h.workflow.ListPending(c.Request.Context(), currentSession(c))
	if err != nil {
		fail(c, err, "Failed to load pending requests")
		return
	}
	respond.JSON(c, http.StatusOK, "ok", requests)
}

func (h *AdminHandler) review(c *gin.Context) {
	sess := currentSession(c)
	board := h.boards.For(sess.ID, requestsForm)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	decision, ok := profile.ParseDecision(c.Param("decision"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "unknown decision")
		return
	}
	reviewed, err := h.workflow.Review(c.Request.Context(), sess, id, decision)
	if err != nil {
		failOn(c, board, err, fmt.Sprintf("Failed to %s request", decision))
		return
	}
	status := reviewed.Status
	if !status.Terminal() {
		status = decision.Status()
	}
	respond.WithAlert(c, http.StatusOK, board.Success(fmt.Sprintf("Request %s.", strings.ToLower(string(status)))), reviewed)
}

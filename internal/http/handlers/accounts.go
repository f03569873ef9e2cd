package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/hongminglow/bank-console/internal/gateway"
	"github.com/hongminglow/bank-console/internal/http/respond"
	"github.com/hongminglow/bank-console/internal/intake"
	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/paging"
	"github.com/hongminglow/bank-console/internal/session"
)

// AccountHandler serves a customer's accounts, history and statements.
type AccountHandler struct {
	backend *gateway.Client
	desk    *intake.Desk
	pages   *paging.Tracker
}

func NewAccountHandler(backend *gateway.Client, desk *intake.Desk, pages *paging.Tracker) *AccountHandler {
	return &AccountHandler{backend: backend, desk: desk, pages: pages}
}

// Register attaches the customer-only routes.
func (h *AccountHandler) Register(r gin.IRoutes) {
	r.GET("/dashboard", h.dashboard)
	r.GET("/accounts", h.accounts)
	r.GET("/accounts/:id/transactions", h.accountTransactions)
	r.GET("/transactions", h.transactions)
	r.GET("/statements/:id", h.statement)
}

type dashboardView struct {
	Accounts     []models.Account                `json:"accounts"`
	TotalBalance decimal.Decimal                 `json:"totalBalance"`
	Transactions models.Page[models.Transaction] `json:"transactions"`
}

func ownerOf(sess session.Session) intake.Owner {
	return intake.Owner{SessionID: sess.ID, Token: sess.BackendToken, CustomerID: sess.Identity.CustomerID}
}

func (h *AccountHandler) dashboard(c *gin.Context) {
	sess := currentSession(c)
	accounts, err := h.desk.Accounts(c.Request.Context(), ownerOf(sess))
	if err != nil {
		fail(c, err, "Failed to load data. Please try again.")
		return
	}
	page, err := h.backend.CustomerTransactions(c.Request.Context(), sess.BackendToken, sess.Identity.CustomerID, 0, paging.DefaultSize)
	if err != nil {
		fail(c, err, "Failed to load data. Please try again.")
		return
	}
	h.pages.Observe(sess.ID, listingKey("transactions", paging.DefaultSize), page.TotalPages)
	page = withBounds(page, paging.Request{Page: 0, Size: paging.DefaultSize})

	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance)
	}
	respond.JSON(c, http.StatusOK, "ok", dashboardView{Accounts: accounts, TotalBalance: total, Transactions: page})
}

func (h *AccountHandler) accounts(c *gin.Context) {
	accounts, err := h.desk.Accounts(c.Request.Context(), ownerOf(currentSession(c)))
	if err != nil {
		fail(c, err, "Failed to load accounts")
		return
	}
	respond.JSON(c, http.StatusOK, "ok", accounts)
}

func (h *AccountHandler) transactions(c *gin.Context) {
	sess := currentSession(c)
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	listing := listingKey("transactions", req.Size)
	if err := h.pages.Check(sess.ID, listing, req); err != nil {
		fail(c, err, "invalid page")
		return
	}
	page, err := h.backend.CustomerTransactions(c.Request.Context(), sess.BackendToken, sess.Identity.CustomerID, req.Page, req.Size)
	if err != nil {
		fail(c, err, "Failed to load transactions")
		return
	}
	h.pages.Observe(sess.ID, listing, page.TotalPages)
	respond.JSON(c, http.StatusOK, "ok", withBounds(page, req))
}

func (h *AccountHandler) accountTransactions(c *gin.Context) {
	sess := currentSession(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.owns(c, sess, id) {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	listing := listingKey(fmt.Sprintf("account:%d", id), req.Size)
	if err := h.pages.Check(sess.ID, listing, req); err != nil {
		fail(c, err, "invalid page")
		return
	}
	page, err := h.backend.AccountTransactions(c.Request.Context(), sess.BackendToken, id, req.Page, req.Size)
	if err != nil {
		fail(c, err, "Failed to load transactions")
		return
	}
	h.pages.Observe(sess.ID, listing, page.TotalPages)
	respond.JSON(c, http.StatusOK, "ok", withBounds(page, req))
}

func (h *AccountHandler) statement(c *gin.Context) {
	sess := currentSession(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.owns(c, sess, id) {
		return
	}
	doc, err := h.backend.DownloadStatement(c.Request.Context(), sess.BackendToken, id)
	if err != nil {
		fail(c, err, "Failed to download statement")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="statement_%d.pdf"`, id))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

// owns checks account id against the owner's freshly listed accounts.
func (h *AccountHandler) owns(c *gin.Context, sess session.Session, id int64) bool {
	accounts, err := h.desk.Accounts(c.Request.Context(), ownerOf(sess))
	if err != nil {
		fail(c, err, "Failed to load accounts")
		return false
	}
	for _, acc := range accounts {
		if acc.ID == id {
			return true
		}
	}
	respond.Error(c, http.StatusNotFound, "account not found")
	return false
}

// listingKey scopes a remembered page count to the page size it was
// reported for.
func listingKey(name string, size int) string {
	return fmt.Sprintf("%s/%d", name, size)
}

// withBounds sets the navigation flags for the page that was asked for, so
// a client never offers a page outside what the backend reported.
func withBounds(page models.Page[models.Transaction], req paging.Request) models.Page[models.Transaction] {
	page.CurrentPage = req.Page
	page.HasNext = paging.CanNext(req.Page, page.TotalPages)
	page.HasPrevious = paging.CanPrev(req.Page)
	return page
}

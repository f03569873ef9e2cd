package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hongminglow/bank-console/internal/alerts"
	"github.com/hongminglow/bank-console/internal/gateway"
	"github.com/hongminglow/bank-console/internal/models"
)

// ErrBusy is returned while a submission from the same owner is in flight.
var ErrBusy = errors.New("a transaction is already being processed")

const recipientRejection = "Invalid recipient account"

// Ledger is the slice of the backend the desk talks to.
type Ledger interface {
	Deposit(ctx context.Context, token, accountNumber string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, token, accountNumber string, amount decimal.Decimal) error
	Transfer(ctx context.Context, token, from, to string, amount decimal.Decimal) error
	ListAccounts(ctx context.Context, token string) ([]models.Account, error)
}

// Owner identifies whose form is being processed.
type Owner struct {
	SessionID  string
	Token      string
	CustomerID int64
}

// Result describes what happened to one submission.
type Result struct {
	Alert    alerts.Alert     `json:"alert"`
	Sent     bool             `json:"sent"`
	Accepted bool             `json:"accepted"`
	Form     Form             `json:"form"`
	Accounts []models.Account `json:"accounts,omitempty"`
}

// Desk validates and submits transaction forms, one at a time per owner,
// and remembers the account list each owner was last shown.
type Desk struct {
	ledger    Ledger
	validator Validator
	logger    *zap.Logger

	mu       sync.Mutex
	inflight map[string]bool
	views    map[string][]models.Account
}

// NewDesk creates a desk backed by ledger.
func NewDesk(ledger Ledger, currency string, logger *zap.Logger) *Desk {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Desk{
		ledger:    ledger,
		validator: Validator{Currency: currency},
		logger:    logger,
		inflight:  make(map[string]bool),
		views:     make(map[string][]models.Account),
	}
}

// Accounts re-reads the owner's accounts from the backend and records them
// as the owner's current view.
func (d *Desk) Accounts(ctx context.Context, owner Owner) ([]models.Account, error) {
	all, err := d.ledger.ListAccounts(ctx, owner.Token)
	if err != nil {
		return nil, err
	}
	mine := models.AccountsOwnedBy(all, owner.CustomerID)
	d.mu.Lock()
	d.views[owner.SessionID] = mine
	d.mu.Unlock()
	return mine, nil
}

// View returns the account list the owner was last shown.
func (d *Desk) View(sessionID string) []models.Account {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.views[sessionID]
}

// Forget drops the owner's view state.
func (d *Desk) Forget(sessionID string) {
	d.mu.Lock()
	delete(d.views, sessionID)
	delete(d.inflight, sessionID)
	d.mu.Unlock()
}

func (d *Desk) acquire(sessionID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inflight[sessionID] {
		return false
	}
	d.inflight[sessionID] = true
	return true
}

func (d *Desk) release(sessionID string) {
	d.mu.Lock()
	delete(d.inflight, sessionID)
	d.mu.Unlock()
}

// Submit validates form and, when it passes, issues exactly one ledger call.
// The outcome is written to board and returned.
func (d *Desk) Submit(ctx context.Context, board *alerts.Board, owner Owner, kind Kind, form Form) (Result, error) {
	if !d.acquire(owner.SessionID) {
		return Result{}, ErrBusy
	}
	defer d.release(owner.SessionID)

	order, err := d.validator.Validate(kind, form, d.View(owner.SessionID))
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return Result{}, err
		}
		return Result{Alert: board.Fail(verr.Slot, alerts.KindValidation, verr.Message), Form: form}, nil
	}

	sendErr := d.send(ctx, owner.Token, order)
	res := Result{Sent: true, Form: form}
	if sendErr == nil {
		res.Accepted = true
		res.Form = Form{}
		res.Alert = board.Success(fmt.Sprintf("%s of %s%s completed successfully!", kind.Title(), d.validator.Currency, order.Amount.StringFixed(2)))
		d.logger.Info("transaction accepted", zap.String("kind", string(kind)), zap.String("account", order.From), zap.String("amount", order.Amount.StringFixed(2)))
	} else {
		res.Alert = d.failure(board, kind, sendErr)
		d.logger.Warn("transaction failed", zap.String("kind", string(kind)), zap.String("account", order.From), zap.Error(sendErr))
	}

	accounts, err := d.Accounts(ctx, owner)
	if err != nil {
		d.logger.Warn("refresh accounts after transaction", zap.Error(err))
	} else {
		res.Accounts = accounts
	}
	return res, nil
}

func (d *Desk) send(ctx context.Context, token string, order Order) error {
	switch order.Kind {
	case KindDeposit:
		return d.ledger.Deposit(ctx, token, order.From, order.Amount)
	case KindWithdraw:
		return d.ledger.Withdraw(ctx, token, order.From, order.Amount)
	case KindTransfer:
		return d.ledger.Transfer(ctx, token, order.From, order.To, order.Amount)
	}
	return fmt.Errorf("unsupported transaction kind %q", order.Kind)
}

// failure routes a backend or network failure to the right slot.
func (d *Desk) failure(board *alerts.Board, kind Kind, err error) alerts.Alert {
	if apiErr, ok := gateway.AsAPIError(err); ok {
		if kind == KindTransfer && strings.Contains(apiErr.Message, recipientRejection) {
			return board.Fail(alerts.SlotDestination, alerts.KindBackend, apiErr.Message)
		}
		return board.Fail(alerts.SlotGeneral, alerts.KindBackend, apiErr.Message)
	}
	if gateway.IsNetwork(err) {
		return board.Fail(alerts.SlotGeneral, alerts.KindNetwork, gateway.NetworkMessage)
	}
	return board.Fail(alerts.SlotGeneral, alerts.KindBackend, "Transaction failed")
}

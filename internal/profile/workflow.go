// Package profile runs the customer profile change workflow. Customers
// file requests that stay PENDING until an admin approves or rejects
// them; admins edit customer records directly and never create requests.
package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/models/dto"
	"github.com/hongminglow/bank-console/internal/session"
)

var (
	ErrNoChanges      = errors.New("no changes detected")
	ErrAdminOnly      = errors.New("admin access required")
	ErrCustomerOnly   = errors.New("admins cannot submit profile update requests; use direct update")
	ErrAlreadyDecided = errors.New("request has already been reviewed")
	ErrBusy           = errors.New("a profile update is already being submitted")
)

// NoChangesMessage is the warning shown when a submission changes nothing.
const NoChangesMessage = "No changes detected. Please modify at least one field."

// Decision is an admin verdict on a pending request.
type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
)

// Status returns the terminal state a decision leads to.
func (d Decision) Status() models.RequestStatus {
	if d == Approve {
		return models.StatusApproved
	}
	return models.StatusRejected
}

// ParseDecision recognises a decision from a route segment.
func ParseDecision(raw string) (Decision, bool) {
	switch d := Decision(raw); d {
	case Approve, Reject:
		return d, true
	}
	return "", false
}

// Backend is the slice of the gateway the workflow needs.
type Backend interface {
	SubmitProfileUpdate(ctx context.Context, token string, customerID int64, payload dto.ProfileUpdatePayload) (models.ProfileUpdateRequest, error)
	MyProfileRequests(ctx context.Context, token string, customerID int64) ([]models.ProfileUpdateRequest, error)
	PendingProfileRequests(ctx context.Context, token string) ([]models.ProfileUpdateRequest, error)
	ApproveProfileRequest(ctx context.Context, token string, requestID int64, adminEmail string) (models.ProfileUpdateRequest, error)
	RejectProfileRequest(ctx context.Context, token string, requestID int64, adminEmail string) (models.ProfileUpdateRequest, error)
	UpdateCustomer(ctx context.Context, token string, id int64, customer dto.CustomerForm) (models.Customer, error)
	GetCustomer(ctx context.Context, token string, id int64) (models.Customer, error)
}

// Workflow mirrors the backend-held approval state machine.
type Workflow struct {
	backend Backend
	logger  *zap.Logger

	mu       sync.Mutex
	inflight map[string]bool
	decided  map[int64]models.RequestStatus
}

// NewWorkflow creates a workflow over backend.
func NewWorkflow(backend Backend, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		backend:  backend,
		logger:   logger,
		inflight: make(map[string]bool),
		decided:  make(map[int64]models.RequestStatus),
	}
}

// Current reads the session's customer record from the backend, so change
// detection runs against live values rather than those cached at login.
func (w *Workflow) Current(ctx context.Context, sess session.Session) (models.Profile, error) {
	customer, err := w.backend.GetCustomer(ctx, sess.BackendToken, sess.Identity.CustomerID)
	if err != nil {
		return models.Profile{}, err
	}
	return customer.Profile(), nil
}

// Changes returns the payload holding only the fields of requested that
// differ from current, and whether there was any difference at all.
func Changes(current, requested models.Profile) (dto.ProfileUpdatePayload, bool) {
	var payload dto.ProfileUpdatePayload
	changed := false
	pick := func(cur, req string) *string {
		if cur == req {
			return nil
		}
		changed = true
		v := req
		return &v
	}
	payload.RequestedFullName = pick(current.FullName, requested.FullName)
	payload.RequestedEmail = pick(current.Email, requested.Email)
	payload.RequestedPhoneNumber = pick(current.PhoneNumber, requested.PhoneNumber)
	payload.RequestedAddress = pick(current.Address, requested.Address)
	return payload, changed
}

// Submit files a change request for the session's customer. current is
// the record the customer is looking at; a submission identical to it is
// refused without contacting the backend. Duplicate pending requests are
// left for the backend to judge.
func (w *Workflow) Submit(ctx context.Context, sess session.Session, current, requested models.Profile) (models.ProfileUpdateRequest, error) {
	if sess.IsAdmin() {
		return models.ProfileUpdateRequest{}, ErrCustomerOnly
	}
	payload, changed := Changes(current, requested)
	if !changed {
		return models.ProfileUpdateRequest{}, ErrNoChanges
	}
	if !w.acquire(sess.ID) {
		return models.ProfileUpdateRequest{}, ErrBusy
	}
	defer w.release(sess.ID)

	req, err := w.backend.SubmitProfileUpdate(ctx, sess.BackendToken, sess.Identity.CustomerID, payload)
	if err != nil {
		return models.ProfileUpdateRequest{}, err
	}
	w.logger.Info("profile update requested", zap.Int64("customer", sess.Identity.CustomerID), zap.Int64("request", req.ID))
	return req, nil
}

// ListMine returns every request of the session's customer in backend order.
func (w *Workflow) ListMine(ctx context.Context, sess session.Session) ([]models.ProfileUpdateRequest, error) {
	if sess.IsAdmin() {
		return nil, ErrCustomerOnly
	}
	return w.backend.MyProfileRequests(ctx, sess.BackendToken, sess.Identity.CustomerID)
}

// ListPending returns all pending requests across customers.
func (w *Workflow) ListPending(ctx context.Context, sess session.Session) ([]models.ProfileUpdateRequest, error) {
	if !sess.IsAdmin() {
		return nil, ErrAdminOnly
	}
	return w.backend.PendingProfileRequests(ctx, sess.BackendToken)
}

// Review moves a pending request to its terminal state. A request this
// console already decided is never sent for review again. Applying an
// approved change to the customer is left entirely to the backend.
func (w *Workflow) Review(ctx context.Context, sess session.Session, requestID int64, decision Decision) (models.ProfileUpdateRequest, error) {
	if !sess.IsAdmin() {
		return models.ProfileUpdateRequest{}, ErrAdminOnly
	}
	w.mu.Lock()
	prior, done := w.decided[requestID]
	w.mu.Unlock()
	if done {
		return models.ProfileUpdateRequest{}, fmt.Errorf("%w: request %d is %s", ErrAlreadyDecided, requestID, prior)
	}

	reviewer := sess.Identity.Email
	if reviewer == "" {
		reviewer = "admin"
	}

	var (
		out models.ProfileUpdateRequest
		err error
	)
	switch decision {
	case Approve:
		out, err = w.backend.ApproveProfileRequest(ctx, sess.BackendToken, requestID, reviewer)
	case Reject:
		out, err = w.backend.RejectProfileRequest(ctx, sess.BackendToken, requestID, reviewer)
	default:
		return models.ProfileUpdateRequest{}, fmt.Errorf("unknown decision %q", decision)
	}
	if err != nil {
		return models.ProfileUpdateRequest{}, err
	}

	status := out.Status
	if !status.Terminal() {
		status = decision.Status()
	}
	w.mu.Lock()
	w.decided[requestID] = status
	w.mu.Unlock()
	w.logger.Info("profile request reviewed", zap.Int64("request", requestID), zap.String("status", string(status)), zap.String("reviewer", reviewer))
	return out, nil
}

// DirectUpdate applies fields to a customer immediately. It is the admin
// path and never creates or touches a change request.
func (w *Workflow) DirectUpdate(ctx context.Context, sess session.Session, customerID int64, current, requested models.Profile) (models.Customer, error) {
	if !sess.IsAdmin() {
		return models.Customer{}, ErrAdminOnly
	}
	if _, changed := Changes(current, requested); !changed {
		return models.Customer{}, ErrNoChanges
	}
	updated, err := w.backend.UpdateCustomer(ctx, sess.BackendToken, customerID, dto.CustomerForm{
		FullName:    requested.FullName,
		Email:       requested.Email,
		PhoneNumber: requested.PhoneNumber,
		Address:     requested.Address,
	})
	if err != nil {
		return models.Customer{}, err
	}
	w.logger.Info("customer updated directly", zap.Int64("customer", customerID), zap.Int64("admin", sess.Identity.CustomerID))
	return updated, nil
}

func (w *Workflow) acquire(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight[key] {
		return false
	}
	w.inflight[key] = true
	return true
}

func (w *Workflow) release(key string) {
	w.mu.Lock()
	delete(w.inflight, key)
	w.mu.Unlock()
}

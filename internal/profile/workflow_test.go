package profile

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bank-console/internal/gateway"
	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/models/dto"
	"github.com/hongminglow/bank-console/internal/session"
)

// fakeBackend keeps requests in memory and applies approvals the way the
// banking backend does.
type fakeBackend struct {
	customers map[int64]models.Customer
	requests  []models.ProfileUpdateRequest
	submits   int
	reviews   int
	updates   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{customers: map[int64]models.Customer{
		1: {ID: 1, FullName: "Ann Lee", Email: "ann@example.com", PhoneNumber: "555", Address: "1 Road", Role: "USER"},
	}}
}

func (f *fakeBackend) SubmitProfileUpdate(_ context.Context, _ string, customerID int64, p dto.ProfileUpdatePayload) (models.ProfileUpdateRequest, error) {
	f.submits++
	req := models.ProfileUpdateRequest{
		ID:                   int64(len(f.requests) + 1),
		CustomerID:           customerID,
		RequestedFullName:    p.RequestedFullName,
		RequestedEmail:       p.RequestedEmail,
		RequestedPhoneNumber: p.RequestedPhoneNumber,
		RequestedAddress:     p.RequestedAddress,
		Status:               models.StatusPending,
	}
	f.requests = append(f.requests, req)
	return req, nil
}

func (f *fakeBackend) MyProfileRequests(_ context.Context, _ string, customerID int64) ([]models.ProfileUpdateRequest, error) {
	var out []models.ProfileUpdateRequest
	for _, r := range f.requests {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBackend) PendingProfileRequests(context.Context, string) ([]models.ProfileUpdateRequest, error) {
	var out []models.ProfileUpdateRequest
	for _, r := range f.requests {
		if r.Status == models.StatusPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBackend) decide(id int64, status models.RequestStatus, admin string) (models.ProfileUpdateRequest, error) {
	f.reviews++
	for i, r := range f.requests {
		if r.ID != id {
			continue
		}
		if r.Status != models.StatusPending {
			return models.ProfileUpdateRequest{}, &gateway.APIError{Status: http.StatusBadRequest, Message: "Request is not pending"}
		}
		if status == models.StatusApproved {
			c := f.customers[r.CustomerID]
			if r.RequestedFullName != nil {
				c.FullName = *r.RequestedFullName
			}
			if r.RequestedEmail != nil {
				c.Email = *r.RequestedEmail
			}
			f.customers[r.CustomerID] = c
		}
		r.Status = status
		r.ReviewedBy = &admin
		f.requests[i] = r
		return r, nil
	}
	return models.ProfileUpdateRequest{}, &gateway.APIError{Status: http.StatusInternalServerError, Message: "Request not found"}
}

func (f *fakeBackend) ApproveProfileRequest(_ context.Context, _ string, id int64, admin string) (models.ProfileUpdateRequest, error) {
	return f.decide(id, models.StatusApproved, admin)
}

func (f *fakeBackend) RejectProfileRequest(_ context.Context, _ string, id int64, admin string) (models.ProfileUpdateRequest, error) {
	return f.decide(id, models.StatusRejected, admin)
}

func (f *fakeBackend) GetCustomer(_ context.Context, _ string, id int64) (models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return models.Customer{}, &gateway.APIError{Status: http.StatusNotFound, Message: "Customer not found"}
	}
	return c, nil
}

func (f *fakeBackend) UpdateCustomer(_ context.Context, _ string, id int64, form dto.CustomerForm) (models.Customer, error) {
	f.updates++
	c := f.customers[id]
	c.FullName, c.Email, c.PhoneNumber, c.Address = form.FullName, form.Email, form.PhoneNumber, form.Address
	f.customers[id] = c
	return c, nil
}

var (
	customerSession = session.Session{ID: "s-cust", Identity: models.Identity{CustomerID: 1, FullName: "Ann Lee", Email: "ann@example.com", PhoneNumber: "555", Address: "1 Road", Role: models.RoleCustomer}}
	adminSession    = session.Session{ID: "s-admin", Identity: models.Identity{CustomerID: 99, Email: "root@bank.test", Role: models.RoleAdmin}}
)

func TestSubmitWithoutChangesIsRefusedLocally(t *testing.T) {
	backend := newFakeBackend()
	wf := NewWorkflow(backend, nil)
	current := customerSession.Identity.Profile()

	_, err := wf.Submit(context.Background(), customerSession, current, current)
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Zero(t, backend.submits)
}

func TestSubmitSendsOnlyChangedFields(t *testing.T) {
	backend := newFakeBackend()
	wf := NewWorkflow(backend, nil)
	current := customerSession.Identity.Profile()
	requested := current
	requested.Address = "2 Street"

	req, err := wf.Submit(context.Background(), customerSession, current, requested)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, req.Status)
	require.NotNil(t, req.RequestedAddress)
	assert.Equal(t, "2 Street", *req.RequestedAddress)
	assert.Nil(t, req.RequestedFullName)
	assert.Nil(t, req.RequestedEmail)
}

func TestDuplicatePendingRequestsArePermitted(t *testing.T) {
	backend := newFakeBackend()
	wf := NewWorkflow(backend, nil)
	current := customerSession.Identity.Profile()
	requested := current
	requested.FullName = "Ann Smith"

	for i := 0; i < 2; i++ {
		_, err := wf.Submit(context.Background(), customerSession, current, requested)
		require.NoError(t, err)
	}
	mine, err := wf.ListMine(context.Background(), customerSession)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestAdminCannotSubmitRequests(t *testing.T) {
	backend := newFakeBackend()
	wf := NewWorkflow(backend, nil)
	requested := adminSession.Identity.Profile()
	requested.FullName = "Root"

	_, err := wf.Submit(context.Background(), adminSession, adminSession.Identity.Profile(), requested)
	assert.ErrorIs(t, err, ErrCustomerOnly)
	assert.Zero(t, backend.submits)
}

func TestApproveIsTerminal(t *testing.T) {
	backend := newFakeBackend()
	wf := NewWorkflow(backend, nil)
	ctx := context.Background()
	current := customerSession.Identity.Profile()
	requested := current
	requested.FullName = "Ann Smith"

	req, err := wf.Submit(ctx, customerSession, current, requested)
	require.NoError(t, err)

	pending, err := wf.ListPending(ctx, adminSession)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := wf.Review(ctx, adminSession, req.ID, Approve)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "root@bank.test", *approved.ReviewedBy)
	assert.Equal(t, "Ann Smith", backend.customers[1].FullName)

	_, err = wf.Review(ctx, adminSession, req.ID, Reject)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	assert.Equal(t, 1, backend.reviews)

	pending, err = wf.ListPending(ctx, adminSession)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReviewRequiresAdmin(t *testing.T) {
	wf := NewWorkflow(newFakeBackend(), nil)
	_, err := wf.Review(context.Background(), customerSession, 1, Approve)
	assert.ErrorIs(t, err, ErrAdminOnly)
	_, err = wf.ListPending(context.Background(), customerSession)
	assert.ErrorIs(t, err, ErrAdminOnly)
}

func TestRejectLeavesCustomerUntouched(t *testing.T) {
	backend := newFakeBackend()
	wf := NewWorkflow(backend, nil)
	ctx := context.Background()
	current := customerSession.Identity.Profile()
	requested := current
	requested.Email = "new@example.com"

	req, err := wf.Submit(ctx, customerSession, current, requested)
	require.NoError(t, err)
	rejected, err := wf.Review(ctx, adminSession, req.ID, Reject)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	assert.Equal(t, "ann@example.com", backend.customers[1].Email)
}

func TestDirectUpdateBypassesWorkflow(t *testing.T) {
	backend := newFakeBackend()
	wf := NewWorkflow(backend, nil)
	current := backend.customers[1].Profile()
	requested := current
	requested.PhoneNumber = "777"

	updated, err := wf.DirectUpdate(context.Background(), adminSession, 1, current, requested)
	require.NoError(t, err)
	assert.Equal(t, "777", updated.PhoneNumber)
	assert.Equal(t, 1, backend.updates)
	assert.Empty(t, backend.requests)
	assert.Zero(t, backend.submits)

	_, err = wf.DirectUpdate(context.Background(), customerSession, 1, current, requested)
	assert.ErrorIs(t, err, ErrAdminOnly)
}

func TestParseDecision(t *testing.T) {
	d, ok := ParseDecision("approve")
	require.True(t, ok)
	assert.Equal(t, models.StatusApproved, d.Status())
	_, ok = ParseDecision("escalate")
	assert.False(t, ok)
}

func TestCurrentReflectsApprovedChanges(t *testing.T) {
	backend := newFakeBackend()
	wf := NewWorkflow(backend, nil)
	ctx := context.Background()
	cached := customerSession.Identity.Profile()
	requested := cached
	requested.FullName = "Ann Smith"

	req, err := wf.Submit(ctx, customerSession, cached, requested)
	require.NoError(t, err)
	_, err = wf.Review(ctx, adminSession, req.ID, Approve)
	require.NoError(t, err)

	live, err := wf.Current(ctx, customerSession)
	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", live.FullName)

	_, err = wf.Submit(ctx, customerSession, live, requested)
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Equal(t, 1, backend.submits)
}

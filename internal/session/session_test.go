package session

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bank-console/internal/auth"
	"github.com/hongminglow/bank-console/internal/gateway"
	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/models/dto"
	"github.com/hongminglow/bank-console/internal/storage"
)

type fakeAuth struct {
	otp      string
	customer models.Customer
	logins   int
}

func (f *fakeAuth) RequestOTP(_ context.Context, email string) (dto.OTPResponse, error) {
	return dto.OTPResponse{Message: "OTP generated for " + email, OTP: f.otp}, nil
}

func (f *fakeAuth) LoginOTP(_ context.Context, email, otp string) (dto.LoginResponse, error) {
	f.logins++
	if otp != f.otp || email != f.customer.Email {
		return dto.LoginResponse{}, &gateway.APIError{Status: http.StatusUnauthorized, Message: "Invalid or expired OTP"}
	}
	return dto.LoginResponse{Message: "Login successful", Customer: f.customer, Token: "dummy-token"}, nil
}

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]storage.SessionRecord
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]storage.SessionRecord)}
}

func (m *memoryStore) SaveSession(_ context.Context, rec storage.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[rec.ID] = rec
	return nil
}

func (m *memoryStore) FindSession(_ context.Context, id string) (storage.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.sessions[id]
	if !ok {
		return storage.SessionRecord{}, storage.ErrNotFound
	}
	return rec, nil
}

func (m *memoryStore) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func newManager(t *testing.T, backend Authenticator) (*Manager, *memoryStore) {
	t.Helper()
	sealer, err := auth.NewSealer("secret")
	require.NoError(t, err)
	store := newMemoryStore()
	return NewManager(backend, store, auth.NewTokenManager("secret", "bank-console", time.Hour), sealer, nil), store
}

func TestLoginWithWrongOTPPersistsNothing(t *testing.T) {
	backend := &fakeAuth{otp: "123456", customer: models.Customer{ID: 1, Email: "c@example.com", Role: "USER"}}
	mgr, store := newManager(t, backend)

	sess, token, err := mgr.Login(context.Background(), "c@example.com", "000000")
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired OTP", gateway.Message(err, ""))
	assert.Empty(t, token)
	assert.Empty(t, sess.ID)
	assert.Zero(t, store.count())
}

func TestLoginRejectsEmptyFormLocally(t *testing.T) {
	backend := &fakeAuth{otp: "1"}
	mgr, _ := newManager(t, backend)

	_, _, err := mgr.Login(context.Background(), " ", "1")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, backend.logins)

	_, err = mgr.RequestOTP(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestLoginResumeLogout(t *testing.T) {
	backend := &fakeAuth{otp: "123456", customer: models.Customer{ID: 9, Email: "root@bank.test", Role: "admin"}}
	mgr, store := newManager(t, backend)
	ctx := context.Background()

	otp, err := mgr.RequestOTP(ctx, " root@bank.test ")
	require.NoError(t, err)

	sess, token, err := mgr.Login(ctx, "root@bank.test", otp.OTP)
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin(), "lower-case admin role must normalize")
	assert.Equal(t, models.RoleAdmin, sess.Identity.Role)
	assert.Equal(t, 1, store.count())

	rec, err := store.FindSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "dummy-token", rec.SealedToken)

	resumed, err := mgr.Resume(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sess.Identity, resumed.Identity)
	assert.Equal(t, "dummy-token", resumed.BackendToken)

	id, err := mgr.Logout(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, id)
	assert.Zero(t, store.count())

	_, err = mgr.Resume(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResumeExpiredSession(t *testing.T) {
	backend := &fakeAuth{otp: "1", customer: models.Customer{ID: 2, Email: "c@example.com"}}
	mgr, store := newManager(t, backend)
	ctx := context.Background()

	_, token, err := mgr.Login(ctx, "c@example.com", "1")
	require.NoError(t, err)

	mgr.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = mgr.Resume(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Zero(t, store.count())
}

func TestResumeWithoutToken(t *testing.T) {
	mgr, _ := newManager(t, &fakeAuth{})
	_, err := mgr.Resume(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = mgr.Resume(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestUpdateIdentity(t *testing.T) {
	backend := &fakeAuth{otp: "1", customer: models.Customer{ID: 5, Email: "a@example.com", FullName: "Old", Role: "ADMIN"}}
	mgr, _ := newManager(t, backend)
	ctx := context.Background()

	sess, token, err := mgr.Login(ctx, "a@example.com", "1")
	require.NoError(t, err)

	updated, err := mgr.UpdateIdentity(ctx, sess, models.Customer{ID: 5, Email: "a@example.com", FullName: "New", Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Identity.FullName)

	resumed, err := mgr.Resume(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "New", resumed.Identity.FullName)
	assert.Equal(t, "dummy-token", resumed.BackendToken)
}

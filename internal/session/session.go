// Package session owns the authenticated console identity: the two-step
// OTP login, its durable persistence across reloads and its teardown.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hongminglow/bank-console/internal/auth"
	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/models/dto"
	"github.com/hongminglow/bank-console/internal/storage"
)

var (
	// ErrNoSession means the caller is not authenticated.
	ErrNoSession = errors.New("no active session")
	// ErrMissingCredentials is a local rejection of an empty login form.
	ErrMissingCredentials = errors.New("email and OTP are required")
	// ErrEmailRequired is a local rejection of an empty OTP request.
	ErrEmailRequired = errors.New("email is required")
)

// Authenticator is the part of the backend that performs the OTP exchange.
type Authenticator interface {
	RequestOTP(ctx context.Context, email string) (dto.OTPResponse, error)
	LoginOTP(ctx context.Context, email, otp string) (dto.LoginResponse, error)
}

// Session is an authenticated console session.
type Session struct {
	ID           string          `json:"id"`
	Identity     models.Identity `json:"identity"`
	BackendToken string          `json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
	ExpiresAt    time.Time       `json:"expiresAt"`
}

// IsAdmin is the single admin check used across the console.
func (s Session) IsAdmin() bool {
	return s.Identity.IsAdmin()
}

// Manager creates, restores and ends sessions.
type Manager struct {
	backend Authenticator
	store   storage.SessionStore
	tokens  *auth.TokenManager
	sealer  *auth.Sealer
	logger  *zap.Logger
	now     func() time.Time
}

// NewManager wires a session manager.
func NewManager(backend Authenticator, store storage.SessionStore, tokens *auth.TokenManager, sealer *auth.Sealer, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{backend: backend, store: store, tokens: tokens, sealer: sealer, logger: logger, now: time.Now}
}

// RequestOTP asks the backend to issue a passcode for email.
func (m *Manager) RequestOTP(ctx context.Context, email string) (dto.OTPResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return dto.OTPResponse{}, ErrEmailRequired
	}
	return m.backend.RequestOTP(ctx, email)
}

// Login completes the OTP exchange. On success the session is persisted
// and a signed token for the browser is returned; on failure nothing is
// persisted.
func (m *Manager) Login(ctx context.Context, email, otp string) (Session, string, error) {
	email, otp = strings.TrimSpace(email), strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return Session{}, "", ErrMissingCredentials
	}

	resp, err := m.backend.LoginOTP(ctx, email, otp)
	if err != nil {
		m.logger.Info("otp login rejected", zap.String("email", email), zap.Error(err))
		return Session{}, "", err
	}
	if resp.Customer.ID == 0 {
		return Session{}, "", fmt.Errorf("login response missing customer")
	}

	now := m.now()
	sess := Session{
		ID:           uuid.NewString(),
		Identity:     models.IdentityFor(resp.Customer),
		BackendToken: resp.Token,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.tokens.TTL()),
	}
	signed, err := m.tokens.Generate(sess.ID, sess.Identity, now)
	if err != nil {
		return Session{}, "", fmt.Errorf("sign session token: %w", err)
	}
	if err := m.persist(ctx, sess); err != nil {
		return Session{}, "", err
	}
	m.logger.Info("session started",
		zap.String("session", sess.ID),
		zap.Int64("customer", sess.Identity.CustomerID),
		zap.String("role", string(sess.Identity.Role)),
	)
	return sess, signed, nil
}

// Resume restores the session a signed token refers to.
func (m *Manager) Resume(ctx context.Context, token string) (Session, error) {
	if strings.TrimSpace(token) == "" {
		return Session{}, ErrNoSession
	}
	claims, err := m.tokens.Parse(token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	rec, err := m.store.FindSession(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if !rec.ExpiresAt.After(m.now()) {
		_ = m.store.DeleteSession(ctx, rec.ID)
		return Session{}, ErrNoSession
	}
	backendToken, err := m.sealer.Open(rec.SealedToken)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	return Session{
		ID:           rec.ID,
		Identity:     rec.Identity,
		BackendToken: backendToken,
		CreatedAt:    rec.CreatedAt,
		ExpiresAt:    rec.ExpiresAt,
	}, nil
}

// Logout tears the session down and returns its id. An unknown or invalid
// token is not an error; there is simply nothing to clear.
func (m *Manager) Logout(ctx context.Context, token string) (string, error) {
	claims, err := m.tokens.Parse(token)
	if err != nil {
		return "", nil
	}
	if err := m.store.DeleteSession(ctx, claims.SessionID); err != nil {
		return "", fmt.Errorf("delete session: %w", err)
	}
	m.logger.Info("session ended", zap.String("session", claims.SessionID))
	return claims.SessionID, nil
}

// UpdateIdentity replaces the stored identity after the customer record
// changed, for example after an admin edited their own profile.
func (m *Manager) UpdateIdentity(ctx context.Context, sess Session, customer models.Customer) (Session, error) {
	sess.Identity = models.IdentityFor(customer)
	if err := m.persist(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (m *Manager) persist(ctx context.Context, sess Session) error {
	sealed, err := m.sealer.Seal(sess.BackendToken)
	if err != nil {
		return fmt.Errorf("seal backend token: %w", err)
	}
	rec := storage.SessionRecord{
		ID:          sess.ID,
		Identity:    sess.Identity,
		SealedToken: sealed,
		CreatedAt:   sess.CreatedAt,
		ExpiresAt:   sess.ExpiresAt,
	}
	if err := m.store.SaveSession(ctx, rec); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

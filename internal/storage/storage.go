package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hongminglow/bank-console/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// SessionRecord is the persisted form of a console session. The backend
// token is stored sealed, never in clear text.
type SessionRecord struct {
	ID          string          `json:"id"`
	Identity    models.Identity `json:"identity"`
	SealedToken string          `json:"sealedToken"`
	CreatedAt   time.Time       `json:"createdAt"`
	ExpiresAt   time.Time       `json:"expiresAt"`
}

// SessionStore captures persistence operations needed by the session manager.
type SessionStore interface {
	SaveSession(ctx context.Context, rec SessionRecord) error
	FindSession(ctx context.Context, id string) (SessionRecord, error)
	DeleteSession(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

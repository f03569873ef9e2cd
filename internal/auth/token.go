package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hongminglow/bank-console/internal/models"
)

// ErrInvalidToken is returned for tokens that fail signature or claim checks.
var ErrInvalidToken = errors.New("invalid session token")

// TokenManager issues and verifies signed console session tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// Claims are the fields a session token carries.
type Claims struct {
	SessionID  string
	CustomerID int64
	Role       models.Role
	ExpiresAt  time.Time
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// TTL is the lifetime of issued tokens.
func (t *TokenManager) TTL() time.Duration {
	return t.ttl
}

// Generate issues a signed JWT string for a session.
func (t *TokenManager) Generate(sessionID string, identity models.Identity, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":   t.issuer,
		"sub":   strconv.FormatInt(identity.CustomerID, 10),
		"sid":   sessionID,
		"email": identity.Email,
		"role":  string(identity.Role),
		"iat":   issuedAt.Unix(),
		"nbf":   issuedAt.Unix(),
		"exp":   issuedAt.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies a token and returns its claims.
func (t *TokenManager) Parse(raw string) (Claims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return Claims{}, fmt.Errorf("%w: missing session id", ErrInvalidToken)
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	customerID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	role, _ := claims["role"].(string)
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}
	return Claims{SessionID: sid, CustomerID: customerID, Role: models.ParseRole(role), ExpiresAt: exp.Time}, nil
}

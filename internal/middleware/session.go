package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hongminglow/bank-console/internal/http/respond"
	"github.com/hongminglow/bank-console/internal/session"
	"github.com/hongminglow/bank-console/internal/shell"
)

// CookieName carries the signed session token for browser clients.
const CookieName = "console_session"

const sessionKey = "consoleSession"

// Resumer restores a session from its signed token.
type Resumer interface {
	Resume(ctx context.Context, token string) (session.Session, error)
}

// Sessions attaches the caller's session, when there is one, to the
// request. It never rejects; the Require guards do that.
func Sessions(resumer Resumer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token != "" {
			sess, err := resumer.Resume(c.Request.Context(), token)
			switch {
			case err == nil:
				c.Set(sessionKey, sess)
			case !errors.Is(err, session.ErrNoSession):
				logger.Warn("resume session", zap.Error(err))
			}
		}
		c.Next()
	}
}

// SessionToken reads the signed token from the cookie or a bearer header.
func SessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// CurrentSession returns the session Sessions attached.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	value, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}, false
	}
	sess, ok := value.(session.Session)
	return sess, ok
}

// SetSession replaces the attached session, e.g. after its identity changed.
func SetSession(c *gin.Context, sess session.Session) {
	c.Set(sessionKey, sess)
}

// RequireSession rejects anonymous callers.
func RequireSession() gin.HandlerFunc {
	return guard(shell.AnyUser)
}

// RequireAdmin admits admins only.
func RequireAdmin() gin.HandlerFunc {
	return guard(shell.AdminOnly)
}

// RequireCustomer admits non-admin customers only.
func RequireCustomer() gin.HandlerFunc {
	return guard(shell.CustomerOnly)
}

func guard(access shell.Access) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			redirect, _ := shell.Guard(access, nil)
			respond.Redirect(c, http.StatusUnauthorized, "Please sign in to continue.", redirect)
			return
		}
		if redirect, allowed := shell.Guard(access, &sess.Identity); !allowed {
			respond.Redirect(c, http.StatusForbidden, "This page is not available for your role.", redirect)
			return
		}
		c.Next()
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hongminglow/bank-console/internal/http/respond"
	"github.com/hongminglow/bank-console/internal/middleware"
	"github.com/hongminglow/bank-console/internal/models/dto"
	"github.com/hongminglow/bank-console/internal/session"
	"github.com/hongminglow/bank-console/internal/shell"
)

// Forgetter drops per-session state when a session ends.
type Forgetter interface {
	Forget(sessionID string)
}

// AuthHandler owns the OTP login flow and the session cookie.
type AuthHandler struct {
	sessions     *session.Manager
	forget       []Forgetter
	ttl          time.Duration
	secureCookie bool
	logger       *zap.Logger
}

// NewAuthHandler constructs the handler. forget is told about every logout.
func NewAuthHandler(sessions *session.Manager, ttl time.Duration, secureCookie bool, logger *zap.Logger, forget ...Forgetter) *AuthHandler {
	return &AuthHandler{sessions: sessions, forget: forget, ttl: ttl, secureCookie: secureCookie, logger: logger}
}

// Register attaches the public auth routes.
func (h *AuthHandler) Register(r gin.IRoutes) {
	r.POST("/auth/otp", h.requestOTP)
	r.POST("/auth/login", h.login)
}

// RegisterSession attaches routes that need a signed-in caller.
func (h *AuthHandler) RegisterSession(r gin.IRoutes) {
	r.POST("/auth/logout", h.logout)
	r.GET("/me", h.me)
	r.GET("/nav", h.nav)
}

type loginView struct {
	Session  session.Session `json:"session"`
	Token    string          `json:"token"`
	Redirect string          `json:"redirect"`
	Nav      []shell.Item    `json:"nav"`
}

func (h *AuthHandler) requestOTP(c *gin.Context) {
	var req dto.ConsoleOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Please enter a valid email address.")
		return
	}
	resp, err := h.sessions.RequestOTP(c.Request.Context(), req.Email)
	if err != nil {
		fail(c, err, "Failed to send OTP")
		return
	}
	respond.JSON(c, http.StatusOK, resp.Message, resp)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req dto.ConsoleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, session.ErrMissingCredentials.Error())
		return
	}
	sess, token, err := h.sessions.Login(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		fail(c, err, "Login failed")
		return
	}
	h.setCookie(c, token, int(h.ttl.Seconds()))
	respond.JSON(c, http.StatusOK, "Login successful", loginView{
		Session:  sess,
		Token:    token,
		Redirect: shell.Home(sess.Identity),
		Nav:      shell.Nav(sess.Identity),
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	sid, err := h.sessions.Logout(c.Request.Context(), middleware.SessionToken(c))
	if err != nil {
		h.logger.Warn("logout", zap.Error(err))
	}
	if sid == "" {
		sid = currentSession(c).ID
	}
	for _, f := range h.forget {
		f.Forget(sid)
	}
	h.setCookie(c, "", -1)
	respond.JSON(c, http.StatusOK, "Logged out", gin.H{"redirect": shell.LoginPath})
}

func (h *AuthHandler) me(c *gin.Context) {
	sess := currentSession(c)
	respond.JSON(c, http.StatusOK, "ok", gin.H{
		"session":  sess,
		"isAdmin":  sess.IsAdmin(),
		"redirect": shell.Home(sess.Identity),
	})
}

func (h *AuthHandler) nav(c *gin.Context) {
	respond.JSON(c, http.StatusOK, "ok", shell.Nav(currentSession(c).Identity))
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, value, maxAge, "/", "", h.secureCookie, true)
}

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hongminglow/bank-console/internal/alerts"
	"github.com/hongminglow/bank-console/internal/config"
	"github.com/hongminglow/bank-console/internal/gateway"
	"github.com/hongminglow/bank-console/internal/http/handlers"
	"github.com/hongminglow/bank-console/internal/intake"
	"github.com/hongminglow/bank-console/internal/middleware"
	"github.com/hongminglow/bank-console/internal/paging"
	"github.com/hongminglow/bank-console/internal/profile"
	"github.com/hongminglow/bank-console/internal/session"
)

// Deps are the long-lived components the routes are served by.
type Deps struct {
	Backend  *gateway.Client
	Sessions *session.Manager
	Desk     *intake.Desk
	Workflow *profile.Workflow
	Alerts   *alerts.Registry
	Pages    *paging.Tracker
	Logger   *zap.Logger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Router(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.DashboardTimeout + cfg.BackendTimeout,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Router builds the console's gin engine.
func Router(cfg config.Config, deps Deps) *gin.Engine {
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger), middleware.CORS(cfg.CORSOrigins))

	handlers.NewHealthHandler(time.Now()).Register(r)

	console := r.Group("/console")
	console.Use(middleware.Sessions(deps.Sessions, deps.Logger))

	authHandler := handlers.NewAuthHandler(deps.Sessions, cfg.SessionTTL, !cfg.Development(), deps.Logger, deps.Alerts, deps.Desk, deps.Pages)
	authHandler.Register(console)

	signedIn := console.Group("", middleware.RequireSession())
	authHandler.RegisterSession(signedIn)
	handlers.NewProfileHandler(deps.Workflow, deps.Sessions, deps.Alerts, deps.Logger).Register(signedIn)
	handlers.NewAlertHandler(deps.Alerts).Register(signedIn)

	customer := console.Group("", middleware.RequireCustomer())
	handlers.NewAccountHandler(deps.Backend, deps.Desk, deps.Pages).Register(customer)
	handlers.NewTransactionHandler(deps.Desk, deps.Alerts).Register(customer)

	admin := console.Group("/admin", middleware.RequireAdmin())
	handlers.NewAdminHandler(deps.Backend, deps.Workflow, deps.Pages, deps.Alerts, cfg.DashboardTimeout, deps.Logger).Register(admin)

	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

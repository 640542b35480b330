package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bumbolandia/bankd/internal/auth"
	"github.com/bumbolandia/bankd/internal/config"
	"github.com/bumbolandia/bankd/internal/http/handlers"
	"github.com/bumbolandia/bankd/internal/ledger"
	"github.com/bumbolandia/bankd/internal/middleware"
	"github.com/bumbolandia/bankd/internal/realtime"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server. The websocket
// endpoint is mounted outside the logging middleware because connection
// hijacking must reach the raw ResponseWriter.
func New(cfg config.Config, svc *ledger.Service, sessions *auth.Registry, hub *realtime.Hub) *Server {
	api := http.NewServeMux()
	health := handlers.NewHealthHandler(time.Now())
	health.Register(api)
	bank := handlers.NewBankHandler(svc, sessions)
	bank.Register(api)
	admin := handlers.NewAdminHandler(svc, sessions)
	admin.Register(api)

	root := http.NewServeMux()
	root.Handle("/ws", realtime.NewHandler(hub, svc))
	root.Handle("/", middleware.CORS(cfg.CORSOrigins, middleware.Logging(api)))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           root,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

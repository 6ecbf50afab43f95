package server

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/stakehub-io/stakehub-client/internal/config"
	"github.com/stakehub-io/stakehub-client/internal/services"
)

// Server is the user-facing trigger surface. It is a thin JSON layer over
// the service; no business logic lives here.
type Server struct {
	cfg *config.ServerConfig
	svc *services.Service
}

func New(cfg *config.ServerConfig, svc *services.Service) *Server {
	return &Server{cfg: cfg, svc: svc}
}

func (s *Server) Start(ctx context.Context) error {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Post("/connect", s.handleConnect)
	router.Post("/setup", s.handleSetup)
	router.Post("/deposit", s.handleDeposit)
	router.Post("/withdraw", s.handleWithdraw)
	router.Post("/claim", s.handleClaim)
	router.Post("/refresh", s.handleRefresh)

	router.Get("/position", s.handlePosition)
	router.Get("/history", s.handleHistory)
	router.Get("/notification", s.handleNotification)
	router.Get("/healthcheck", s.handleHealthcheck)

	server := &http.Server{
		Addr:         s.cfg.Address(),
		Handler:      router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	log.Info().Msgf("Starting stakehub client server on %s", s.cfg.Address())
	return server.ListenAndServe()
}

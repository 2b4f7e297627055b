package http

import (
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablebook/config"
	"tablebook/shared/constant"
	"tablebook/transport/http/middleware"
	"tablebook/transport/http/response"
	"tablebook/transport/http/router"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	State      ServerState
	mux        *chi.Mux
}

func New(cfg *config.Config, r router.Router, m middleware.AppMiddleware) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: m,
	}
}

func (h *HTTP) Serve() {
	h.setup()

	server := &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: 30 * time.Second,
	}

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func (h *HTTP) setup() {
	h.setupRoutes()
	h.setupGracefulShutdown()
	h.State = ServerStateReady
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	if h.Config.App.CORS.Enable {
		corsConfig := h.Config.App.CORS

		h.mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsConfig.AllowedOrigins,
			AllowedMethods:   corsConfig.AllowedMethods,
			AllowedHeaders:   corsConfig.AllowedHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAgeSeconds,
		}))
	}

	h.mux.Use(h.Middleware.Tracing)
	h.mux.Use(h.Middleware.RateLimit())

	h.mux.Get("/health", h.HealthCheck)

	h.Router.SetupRoutes(h.mux)
}

// HealthCheck reports readiness, flipping to unavailable once a shutdown has
// been requested so load balancers can drain the instance.
func (h *HTTP) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	switch h.State {
	case ServerStateReady:
		response.WithMessage(w, http.StatusOK, "OK")
	case ServerStateInGracePeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer os.Exit(0)

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.State = ServerStateInGracePeriod

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State = ServerStateInCleanupPeriod

	time.Sleep(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

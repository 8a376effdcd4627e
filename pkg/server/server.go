package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/billing-atlas/pkg/handlers/billing"
	billingmiddleware "github.com/de-tools/billing-atlas/pkg/server/middleware"
	"github.com/de-tools/billing-atlas/pkg/services/aws_ce"
	"github.com/de-tools/billing-atlas/pkg/services/aws_sts"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Costs    aws_ce.Explorer
	Identity aws_sts.Service
}

type Config struct {
	Addr            string
	AllowedOrigins  []string
	APIBasePath     string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: ConfigureRouter(logger, config),
		logger: &logger,
		server: &http.Server{
			Addr: config.Addr,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// ConfigureRouter wires middleware and routes. The API sub-router is mounted
// at /api and, when a base path is configured, a second time under it so the
// service can sit behind a path-rewriting proxy without redeployment.
func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	billingHandler := handlers.NewHandler(config.Dependencies.Costs, config.Dependencies.Identity)

	router := chi.NewRouter()
	router.Use(billingmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	apiRoutes := func(r chi.Router) {
		r.Get("/health", billingHandler.Health)
		r.Post("/cost-data", billingHandler.GetCostData)
		r.Post("/cost-data-simple", billingHandler.GetCostDataSimple)
		r.Post("/dimensions", billingHandler.GetDimensions)
		r.Post("/account-info", billingHandler.GetAccountInfo)
		r.Post("/validate-credentials", billingHandler.ValidateCredentials)
	}

	router.Route("/api", apiRoutes)
	if config.APIBasePath != "" {
		router.Route(config.APIBasePath+"/api", apiRoutes)
	}

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "AWS Billing Dashboard API",
		})
	})

	return router
}

func (w *WebAPI) Start() error {
	w.server.Handler = w.router

	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}

package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	handlers "github.com/lgu-tools/aip-atlas/pkg/handlers/analysis"
	aipmiddleware "github.com/lgu-tools/aip-atlas/pkg/server/middleware"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Budget     handlers.BudgetModel
	Validation handlers.ValidationModel
	Document   handlers.DocumentModel
	Registry   analysis.Registry
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter builds the API router; split out so tests can serve it
// directly with httptest.
func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	handler := handlers.NewHandler(
		config.Dependencies.Budget,
		config.Dependencies.Validation,
		config.Dependencies.Document,
		config.Dependencies.Registry,
	)

	router := chi.NewRouter()

	router.Use(aipmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/programs/{program}/analysis/budget", handler.GetBudgetAnalysis)
		r.Get("/programs/{program}/analysis/validation", handler.GetValidationAnalysis)
		r.Post("/documents/analysis", handler.AnalyzeDocument)
		r.Get("/models", handler.ListModels)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Start() error {
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

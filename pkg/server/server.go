package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/health-atlas/pkg/handlers"
	"github.com/de-tools/health-atlas/pkg/handlers/dashboard"
	"github.com/de-tools/health-atlas/pkg/handlers/integrations"
	"github.com/de-tools/health-atlas/pkg/services/telemetry"
	"github.com/de-tools/health-atlas/pkg/services/views"

	atlasmiddleware "github.com/de-tools/health-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Loader      dashboard.DocumentLoader
	Transformer *views.Transformer
	Compiler    dashboard.ReportCompiler
	Uploader    integrations.RecordUploader
	Queries     integrations.QueryRunner
	Sentiment   integrations.SentimentAnalyzer
	Prediction  integrations.PredictionService
}

type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	RateLimit       RateLimit
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

// ConfigureRouter mounts every route on a fresh router. The /aws group is rate limited since
// each call may reach a billed external service.
func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	deps := config.Dependencies
	dashboardHandler := dashboard.NewHandler(deps.Loader, deps.Transformer, deps.Compiler)
	integrationsHandler := integrations.NewHandler(deps.Uploader, deps.Queries, deps.Sentiment, deps.Prediction)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(atlasmiddleware.Logger(&logger))
	router.Use(atlasmiddleware.Metrics)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Method(http.MethodGet, "/metrics", telemetry.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/areas", dashboardHandler.Areas)
		r.Get("/areas/{area}", dashboardHandler.Area)
		r.Get("/costs-by-district", dashboardHandler.CostsByDistrict)
		r.Get("/costs-by-motive", dashboardHandler.CostsByMotive)
		r.Get("/trends", dashboardHandler.Trends)
		r.Get("/predictive", dashboardHandler.Predictive)
		r.Get("/overview", dashboardHandler.Overview)
		r.Post("/download", dashboardHandler.Download)

		r.Route("/aws", func(r chi.Router) {
			if config.RateLimit.RequestsPerSecond > 0 {
				r.Use(atlasmiddleware.RateLimiter(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst))
			}
			r.Post("/s3/upload", integrationsHandler.Upload)
			r.Post("/athena/query", integrationsHandler.Query)
			r.Post("/sentiment", integrationsHandler.Sentiment)
			r.Post("/predict/{kind}", integrationsHandler.Predict)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, r, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	return router
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
		w.logger.Info().Dur("timeout", w.shutdownTimeout).Msg("shutdown initiated")

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

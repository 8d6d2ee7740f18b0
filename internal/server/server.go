package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/growpodempire/growpod/internal/handler"
	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/metrics"
	"github.com/growpodempire/growpod/internal/repository"
)

// Server wraps the HTTP surface over the bundle engine and the store.
type Server struct {
	httpServer *http.Server
	store      repository.Store
}

// NewServer builds the route tree and middleware stack.
func NewServer(port int, engine handler.Submitter, store repository.Store) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(securityHeadersMiddleware)
	r.Use(requestSizeLimitMiddleware(maxRequestBody))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(store))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/bundle", handler.HandleSubmitBundle(engine))

		r.Get("/config", handler.HandleGetConfig(store))

		r.Route("/account", func(r chi.Router) {
			r.Post("/optin", handler.HandleOptIn(engine))
			r.Get("/state", handler.HandleGetAccountState(store))
			r.Get("/balance", handler.HandleGetBalance(store))
		})

		r.Route("/pod", func(r chi.Router) {
			r.Post("/mint", handler.HandleMintPod(engine))
			r.Post("/water", handler.HandleWaterPod(engine))
			r.Post("/nutrients", handler.HandleFeedPod(engine))
			r.Post("/harvest", handler.HandleHarvestPod(engine))
			r.Post("/cleanup", handler.HandleCleanupPod(engine, store))
			r.Post("/breed", handler.HandleBreedPods(engine, store))
		})

		r.Post("/reward/check", handler.HandleCheckReward(engine))

		r.Route("/slots", func(r chi.Router) {
			r.Post("/claim", handler.HandleClaimSlotToken(engine, store))
			r.Post("/unlock", handler.HandleUnlockSlot(engine, store))
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/leaderboard", handler.HandleGetLeaderboard(store))
			r.Get("/global", handler.HandleGetGlobalStats(store))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/bootstrap", handler.HandleBootstrap(engine))
			r.Post("/assets", handler.HandleSetAssetIDs(engine))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		store: store,
	}
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderContentType, HeaderValueNoSniff)
		w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
		w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
		next.ServeHTTP(w, r)
	})
}

func requestSizeLimitMiddleware(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

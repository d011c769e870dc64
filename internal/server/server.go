// Package server exposes report generation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/AnyUserName/swatchcard/internal/config"
	"github.com/AnyUserName/swatchcard/internal/generator"
)

// Version is reported by the health endpoint.
const Version = "2.0"

// ServiceName identifies the service in health and descriptor responses.
const ServiceName = "swatch-card-api"

// Server is the HTTP front end of a Generator.
type Server struct {
	cfg config.ServerConfig
	gen *generator.Generator
	log *zap.Logger
	srv *http.Server
}

// New creates a server. Call Run to start listening.
func New(cfg config.ServerConfig, gen *generator.Generator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{cfg: cfg, gen: gen, log: log}
	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler with CORS, request ids and access
// logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/export-excel", s.handleExport)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /{$}", s.handleHome)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Disposition", HeaderImagesPlaced, HeaderImagesTotal, HeaderRequestID},
	})
	return c.Handler(s.withRequestID(s.withAccessLog(mux)))
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.cfg.Addr))
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

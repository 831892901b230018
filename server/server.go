package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	odpamsterdam "github.com/theoremus-urban-solutions/odp-amsterdam"
	"github.com/theoremus-urban-solutions/odp-amsterdam/config"
	"github.com/theoremus-urban-solutions/odp-amsterdam/models"
)

const shutdownTimeout = 10 * time.Second

// GarageSource is the data the API serves. *odpamsterdam.Client implements it.
type GarageSource interface {
	AllGarages(ctx context.Context, filter odpamsterdam.GarageFilter) ([]models.Garage, error)
	Garage(ctx context.Context, id string) (models.Garage, error)
	Locations(ctx context.Context, limit int, parkingType string) ([]models.ParkingSpot, error)
}

// Server serves the HTTP API.
type Server struct {
	src    GarageSource
	cfg    config.ServerConfig
	log    *slog.Logger
	val    *validator.Validate
	engine *gin.Engine
	now    func() time.Time
}

// New creates a server for src. A nil logger discards output.
func New(src GarageSource, cfg config.ServerConfig, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		src: src,
		cfg: cfg,
		log: log,
		val: validator.New(),
		now: time.Now,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(RequestLogger(s.log))

	engine.GET("/api/health", s.handleHealth)

	api := engine.Group("/api")
	api.GET("/garages", s.handleGarages)
	api.GET("/garages/:id", s.handleGarage)
	api.GET("/locations", s.handleLocations)

	return engine
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.log.Info("server shut down successfully")
	return nil
}

// Package server exposes the maze solver over HTTP with gin.
//
// Routes live under <BaseURL>/v1:
//
//	POST /solve   search a maze and return its path and renders
//	POST /render  draw a maze without searching
//	GET  /health  liveness, plus cache reachability when the store can ping
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long Serve waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Controller registers a group of routes.
type Controller interface {
	Register(route *gin.RouterGroup)
}

// Router owns the gin engine and the HTTP server around it.
type Router struct {
	addr        string
	baseURL     string
	controllers []Controller
	logger      *zap.Logger
	maxBody     int64
}

// Config holds the settings for NewRouter.
type Config struct {
	Addr        string // Address to listen on
	BaseURL     string // Prefix for API routes, e.g. "/api"
	Controllers []Controller
	Logger      *zap.Logger
	MaxBodySize int64 // Request body limit in bytes; 0 means 1 MiB
}

// NewRouter creates a Router from config.
func NewRouter(config Config) *Router {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBody := config.MaxBodySize
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	return &Router{
		addr:        config.Addr,
		baseURL:     config.BaseURL,
		controllers: config.Controllers,
		logger:      logger,
		maxBody:     maxBody,
	}
}

// Handler builds the gin engine with every controller mounted under
// <BaseURL>/v1.
func (r *Router) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(r.logger), limitBody(r.maxBody))

	api := router.Group(r.baseURL)
	{
		v1 := api.Group("/v1")
		for _, c := range r.controllers {
			c.Register(v1)
		}
	}

	return router
}

// Run listens on the configured address and serves until ctx is done.
func (r *Router) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.addr)
	if err != nil {
		return err
	}

	return r.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (r *Router) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	r.logger.Info("HTTP server stopped")

	return nil
}

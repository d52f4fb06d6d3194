package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
)

// DefaultBodyLimit caps uploads at 16 MiB.
const DefaultBodyLimit = 16 << 20

// shutdownTimeout bounds graceful shutdown after the context ends.
const shutdownTimeout = 10 * time.Second

// Config configures the HTTP server.
type Config struct {
	// BodyLimit is the maximum request size in bytes. Zero uses DefaultBodyLimit.
	BodyLimit int
}

// Server exposes the analysis pipeline over HTTP.
type Server struct {
	ports *Ports
	app   *fiber.App
}

// NewServer creates a server with its routes registered.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = DefaultBodyLimit
	}

	s := &Server{ports: ports}
	s.app = fiber.New(fiber.Config{
		AppName:               "atsfit",
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	s.app.Post("/analyze", s.handleAnalyze)
	s.app.Get("/analyses", s.handleListAnalyses)
	s.app.Get("/analyses/:id", s.handleGetAnalysis)
	s.app.Delete("/analyses/:id", s.handleDeleteAnalysis)
	s.app.Get("/download/:id/:format", s.handleDownload)
	s.app.Post("/score", s.handleScore)
	s.app.Post("/render", s.handleRender)
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
// Oversized bodies are rejected by the listener before routing and still
// get the JSON error body.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	}
}

// errorHandler maps domain errors onto status codes with a JSON body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedFormat):
		code = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, domain.ErrExtraction):
		code = fiber.StatusUnprocessableEntity
	}

	if code >= fiber.StatusInternalServerError {
		logger.Warn("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

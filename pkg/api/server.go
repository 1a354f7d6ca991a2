// Package api serves the diagnostic sections over HTTP.
package api

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vertti/hostprobe/pkg/output"
	"github.com/vertti/hostprobe/pkg/report"
)

// handlerTimeout bounds the work done for a single request.
const handlerTimeout = 10 * time.Second

// SectionFunc produces a fresh section per request.
type SectionFunc func(ctx context.Context) report.Section

// Server represents the API server
type Server struct {
	app    *fiber.App
	env    SectionFunc
	cgroup SectionFunc
	memory MemoryFunc
	os     string
}

// Options configures NewServer.
type Options struct {
	OS        string     // reported by /api/health
	AccessLog io.Writer  // request log destination (default: stderr)
	Memory    MemoryFunc // enables /metrics when set
	Version   string
}

// NewServer creates a new API server
func NewServer(env, cgroup SectionFunc, opts Options) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		ServerHeader:          "hostprobe",
		AppName:               "hostprobe " + opts.Version,
		DisableStartupMessage: true,
	})

	accessLog := opts.AccessLog
	if accessLog == nil {
		accessLog = os.Stderr
	}
	app.Use(logger.New(logger.Config{Output: accessLog}))

	server := &Server{
		app:    app,
		env:    env,
		cgroup: cgroup,
		memory: opts.Memory,
		os:     opts.OS,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api")

	api.Get("/env", s.section(s.env))
	api.Get("/cgroup", s.section(s.cgroup))
	api.Get("/health", s.healthCheck)

	if s.memory != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metricsHandler()))
	}
}

func (s *Server) metricsHandler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		newMemoryCollector(s.memory),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Start starts the API server
func (s *Server) Start(address string) error {
	return s.app.Listen(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for in-process requests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) section(fn SectionFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), handlerTimeout)
		defer cancel()

		sec := fn(ctx)
		if sec.Status == report.StatusFail {
			return c.Status(fiber.StatusInternalServerError).JSON(output.ToJSON(sec))
		}

		return c.JSON(output.ToJSON(sec))
	}
}

func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"os":        s.os,
		"timestamp": time.Now().Unix(),
	})
}

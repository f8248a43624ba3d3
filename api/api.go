package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/shelf/api/mcp"
	"github.com/papercomputeco/shelf/pkg/recommend"
)

// Server is the API server for a single corpus.
type Server struct {
	config Config
	rec    *recommend.Recommender
	logger *slog.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The recommender is injected so the CLI and the server can share one graph cache.
func NewServer(config Config, rec *recommend.Recommender, logger *slog.Logger) (*Server, error) {
	if rec == nil {
		return nil, errors.New("recommender is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		rec:    rec,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/v1/items", s.handleListItems)
	app.Get("/v1/graph", s.handleGraph)
	app.Post("/v1/plan", s.handlePlan)

	if !config.NoMCP {
		mcpServer, err := mcp.NewServer(mcp.Config{
			Recommender: rec,
			Logger:      logger,
		})
		if err != nil {
			return nil, err
		}
		app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))
	}

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
		"items", s.rec.Catalog().Len(),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Package servecmder provides the serve command for running the shelf API
// server.
package servecmder

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/shelf/api"
	"github.com/papercomputeco/shelf/pkg/config"
	"github.com/papercomputeco/shelf/pkg/graphcache"
	"github.com/papercomputeco/shelf/pkg/logger"
	"github.com/papercomputeco/shelf/pkg/recommend"
)

type ServeCommander struct {
	listen  string
	noMCP   bool
	json    bool
	logFile string

	graph     config.GraphFlagValues
	configDir string
	debug     bool
	logger    *slog.Logger
}

const serveLongDesc string = `Run the shelf API server.

The corpus is loaded and the similarity graph built once at startup. The
server then answers plan requests concurrently from that graph.

Endpoints:
  GET  /ping        Health check
  GET  /v1/items    List corpus items
  GET  /v1/graph    Graph statistics (?edges=true for the edge list)
  POST /v1/plan     Plan a reading path: {"read": [...], "want": "..."}
  /mcp              MCP server with the reading_plan tool

Examples:
  shelf serve
  shelf serve --listen :9000 --policy topk --top-k 3`

const serveShortDesc string = "Run the shelf API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			cmder.debug, _ = cmd.Flags().GetBool("debug")
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Registry, config.FlagAPIListen, &cmder.listen)
	cmd.Flags().BoolVar(&cmder.noMCP, "no-mcp", false, "Disable the MCP endpoint")
	cmd.Flags().BoolVar(&cmder.json, "log-json", false, "Write JSON logs")
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also append JSON logs with source locations to this file")
	config.AddGraphFlags(cmd, &cmder.graph)

	return cmd
}

func (c *ServeCommander) run(cmd *cobra.Command) error {
	c.logger = logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(!c.json),
		logger.WithJSON(c.json),
	)
	if c.logFile != "" {
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()

		c.logger = logger.Multi(c.logger, logger.New(
			logger.WithDebug(c.debug),
			logger.WithJSON(true),
			logger.WithSource(true),
			logger.WithWriter(f),
		))
	}

	cfg, dir, err := config.ResolveFlags(cmd, c.configDir, append([]string{config.FlagAPIListen}, config.GraphFlags...))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	rec, err := recommend.FromConfig(cmd.Context(), cfg, dir, graphcache.New(c.logger), c.logger)
	if err != nil {
		return err
	}

	// Build eagerly so a bad matrix fails at startup.
	stats, err := rec.Stats()
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}
	c.logger.Info("similarity graph built",
		"policy", stats.Policy,
		"distance", stats.Transform,
		"items", stats.Nodes,
		"edges", stats.Edges,
		"isolated", len(stats.Isolated),
	)

	server, err := api.NewServer(api.Config{
		ListenAddr: cfg.API.Listen,
		NoMCP:      c.noMCP,
	}, rec, c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}

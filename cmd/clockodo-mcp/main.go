package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"clockodo-mcp/internal/adapter/clockodo"
	"clockodo-mcp/internal/config"
	mcpserver "clockodo-mcp/internal/mcp"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		cfgPath string
		verbose bool
	)

	root := &cobra.Command{
		Use:          "clockodo-mcp",
		Short:        "MCP server exposing Clockodo time tracking as tools and resources",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfgPath, verbose)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to optional TOML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfgPath, verbose)
		},
	}
	root.AddCommand(serveCmd)

	return root
}

func serve(cfgPath string, verbose bool) error {
	// Stdout carries the MCP protocol, so the logger writes to stderr.
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		return err
	}

	client, err := clockodo.NewClient(
		cfg.Clockodo.BaseURL,
		cfg.Clockodo.Email,
		cfg.Clockodo.APIKey,
		cfg.Clockodo.Application,
		cfg.Clockodo.Timeout,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize clockodo client", slog.String("error", err.Error()))
		return err
	}

	sessionID := uuid.NewString()
	logger.Info("starting MCP server",
		slog.String("session_id", sessionID),
		slog.String("version", mcpserver.Version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := mcpserver.New(logger.With(slog.String("session_id", sessionID)), client)
	if err := mcpserver.ServeStdio(ctx, s); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("MCP server error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("shutting down")
	return nil
}

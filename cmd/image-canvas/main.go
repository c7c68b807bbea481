// Package main provides the CLI entry point for the image canvas MCP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/ironsheep/image-canvas-mcp/internal/canvas"
	"github.com/ironsheep/image-canvas-mcp/internal/config"
	"github.com/ironsheep/image-canvas-mcp/internal/logger"
	"github.com/ironsheep/image-canvas-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "image-canvas",
		Usage:   l10n.T("MCP server for creating, drawing on and compositing images"),
		Version: Version,
		Description: l10n.T("image-canvas communicates via MCP protocol over stdin/stdout.") + "\n" +
			l10n.T("Configure it in your MCP client (e.g., Claude Desktop)."),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("YAML configuration file"),
				EnvVars: []string{"IMAGE_CANVAS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   l10n.T("Log level (debug, info, warn, error, quiet)"),
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  l10n.T("Serve MCP requests on stdin/stdout (default)"),
				Action: serve,
			},
			{
				Name:   "formats",
				Usage:  l10n.T("List readable and writable image formats"),
				Action: formats,
			},
			{
				Name:   "version",
				Usage:  l10n.T("Show version information"),
				Action: version,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the --config file and environment, then applies
// --log-level on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	// stdout carries the protocol; logs go to stderr.
	var log logger.Logger
	if cfg.Level() == logger.LevelQuiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(cfg.Level())
	}
	log.Debug("Image canvas server %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// The server blocks reading stdin; closing it ends Run after a signal.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
			os.Stdin.Close()
		case <-ctx.Done():
		}
	}()

	srv := server.New(
		server.WithConfig(cfg),
		server.WithLogger(log),
		server.WithVersion(Version),
	)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("Server error: %v", err)
		return cli.Exit("", 1)
	}
	return nil
}

func formats(c *cli.Context) error {
	w := c.App.Writer
	fmt.Fprintf(w, "%s: %s\n", l10n.T("Readable"), strings.Join(canvas.ReadableFormats(), ", "))
	fmt.Fprintf(w, "%s: %s\n", l10n.T("Writable"), strings.Join(canvas.WritableFormats(), ", "))
	return nil
}

func version(c *cli.Context) error {
	w := c.App.Writer
	fmt.Fprintln(w, l10n.F("image-canvas version %s", Version))
	fmt.Fprintf(w, "  %s: %s\n", l10n.T("Build time"), BuildTime)
	fmt.Fprintf(w, "  %s: %s\n", l10n.T("Git commit"), GitCommit)
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/ansuz/internal"
	pkgconfig "github.com/starford/ansuz/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx,
		internal.WithConfig(cfg),
		internal.WithContentDir(cmd.String("content")),
	); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(ctx,
		internal.WithConfig(cfg),
		internal.WithContentDir(cmd.String("content")),
	); err != nil {
		return fmt.Errorf("mcp run error: %w", err)
	}
	return nil
}

func main() {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to config file",
			DefaultText: "config/config.yaml",
			Value:       "config/config.yaml",
			Sources:     cli.EnvVars("APP_CONFIG_FILE"),
		},
		&cli.StringFlag{
			Name:    "content",
			Usage:   "Path to the markdown content directory (overrides config)",
			Sources: cli.EnvVars("ANSUZ_CONTENT_DIR"),
		},
	}

	cmd := &cli.Command{
		Name:   "ansuz",
		Usage:  "Markdown blog engine with a cross-reference graph, fuzzy search, and scroll-synchronized navigation",
		Action: runServe,
		Flags:  flags,
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve the content graph over MCP stdio transport",
				Action: runMCP,
				Flags:  flags,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/seborama/proton-mail-export-cli-tidy/internal/config"
	"github.com/seborama/proton-mail-export-cli-tidy/internal/organizer"
	"github.com/seborama/proton-mail-export-cli-tidy/pkg/utils"
)

const defaultEnvFile = ".env"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "tidy",
		Usage:     "organize Proton Mail exported EML files into folders based on their labels",
		ArgsUsage: "<export-dir>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable detailed logging including per-email copy decisions",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "preview the organization without copying any files",
			},
			&cli.BoolFlag{
				Name:  "json-logs",
				Usage: "emit JSON logs instead of the console format",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to YAML config file (or set " + config.EnvConfigPath + ")",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one argument: the export directory")
	}
	exportDir := c.Args().First()

	if err := loadEnvFile(); err != nil {
		return err
	}

	configureLogging(c.Bool("json-logs"), c.Bool("debug"))

	ctx := c.Context
	otelShutdown, err := utils.SetupOTelSDK(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			slog.Warn("telemetry shutdown", "err", err)
		}
	}()

	cfgPath := c.String("config")
	if cfgPath == "" {
		cfgPath = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	slog.Info("organizing Proton Mail export", "dir", exportDir, "dryRun", c.Bool("dry-run"))

	o, err := organizer.New(
		organizer.WithExportDir(exportDir),
		organizer.WithConfig(cfg),
		organizer.WithDryRun(c.Bool("dry-run")),
		organizer.WithFileManager(utils.OSFileManager{}),
		organizer.WithLogger(slog.Default()),
	)
	if err != nil {
		return err
	}

	summary, err := o.Run(ctx)
	if err != nil {
		return err
	}

	if len(summary.Warnings) > 0 {
		slog.Warn("run finished with warnings", "count", len(summary.Warnings))
	}

	return nil
}

func configureLogging(jsonLogs, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	if jsonLogs {
		slog.SetDefault(slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
		return
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		})))
}

func loadEnvFile() error {
	if _, err := os.Stat(defaultEnvFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(defaultEnvFile)
}

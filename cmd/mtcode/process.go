package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mtkit/mtcode/internal/config"
	"github.com/mtkit/mtcode/internal/gateway"
	"github.com/mtkit/mtcode/pkg/bus"
	"github.com/mtkit/mtcode/pkg/pipeline"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run message events from stdin through the preprocessing pipeline",
		Long: `Process reads one JSON event per line from stdin, runs each through the
preprocessing pipeline, and writes the processed events to stdout as JSON
lines. The message field accepts both the segment array form and a raw MT
code string.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			if cfgPath == "" {
				resolved, err := resolveConfigPath()
				if err != nil {
					return err
				}
				cfgPath = resolved
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			return runProcess(cmd, cfg)
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	return cmd
}

func runProcess(cmd *cobra.Command, cfg *config.Config) error {
	logger := buildLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	out := json.NewEncoder(cmd.OutOrStdout())
	b := bus.New()
	b.Subscribe("message", func(_ context.Context, payload any) (any, error) {
		return nil, out.Encode(payload)
	})

	dispatcher, err := pipeline.NewDispatcher(pipeline.Config{
		Nicknames: cfg.Nicknames,
		Bus:       b,
		Logger:    logger,
		Metrics:   pipeline.NewMetrics(reg),
	})
	if err != nil {
		return err
	}

	if cfg.Gateway.Enabled {
		gw := gateway.New(gateway.Config{
			Bind:            cfg.Gateway.Bind,
			ReadTimeout:     cfg.Gateway.ReadTimeout,
			WriteTimeout:    cfg.Gateway.WriteTimeout,
			ShutdownTimeout: cfg.Gateway.ShutdownTimeout,
			Version:         version,
		}, logger, reg)
		if err := gw.Start(); err != nil {
			return err
		}
		defer func() { _ = gw.Stop(context.Background()) }()
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("process: shutdown signal received")
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			var ev pipeline.Event
			if err := json.Unmarshal([]byte(line), &ev); err != nil {
				logger.Warn("process: skipping malformed event", "error", err)
				continue
			}
			if ev.SelfID == 0 {
				ev.SelfID = cfg.SelfID
			}
			if ev.Time.IsZero() {
				ev.Time = time.Now()
			}
			if err := dispatcher.Process(ctx, &ev); err != nil {
				return err
			}
		}
	}
}

// buildLogger constructs the logger described by the log config. Logs go
// to stderr; stdout carries the processed event stream.
func buildLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// resolveConfigPath searches for a config file in standard locations.
// Search order: $XDG_CONFIG_HOME/mtcode/mtcode.yaml → ./mtcode.yaml
func resolveConfigPath() (string, error) {
	var candidates []string

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "mtcode", "mtcode.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "mtcode", "mtcode.yaml"))
	}

	candidates = append(candidates, "mtcode.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found (searched: %v)", candidates)
}

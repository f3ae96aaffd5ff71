package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/config"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/entity"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/pipeline"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/server"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/storage"
)

func main() {
	root := &cobra.Command{
		Use:          "pipeline",
		Short:        "Marketplace export ingestion pipeline",
		SilenceUsage: true,
	}
	root.AddCommand(ingestCmd(), serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func ingestCmd() *cobra.Command {
	var (
		filePath string
		source   string
		runAtRaw string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run one export file through the pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoad()
			setupLogger(cfg.Log)

			content, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("failed to read export file: %w", err)
			}

			runAt := time.Now().UTC()
			if runAtRaw != "" {
				runAt, err = time.Parse(time.RFC3339, runAtRaw)
				if err != nil {
					return fmt.Errorf("invalid --run-at timestamp: %w", err)
				}
			}

			stor, err := storage.NewStorage(&cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to init storage: %w", err)
			}
			defer stor.Close()
			slog.Info("connected to warehouse", "host", cfg.Storage.Host, "dbname", cfg.Storage.DBName)

			orch := pipeline.New(stor, slog.Default())
			report, err := orch.Run(context.Background(), entity.RunParams{
				File:         content,
				SourceLayout: source,
				RunAt:        runAt,
			})
			printReport(cmd, report)
			return err
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "path to the export file")
	cmd.Flags().StringVar(&source, "source", "", "source layout id (shopee|tokopedia|tiktok)")
	cmd.Flags().StringVar(&runAtRaw, "run-at", "", "run timestamp, RFC 3339 (default: now)")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("source")
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the ingestion HTTP API for the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoad()
			setupLogger(cfg.Log)

			stor, err := storage.NewStorage(&cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to init storage: %w", err)
			}
			defer stor.Close()
			slog.Info("connected to warehouse", "host", cfg.Storage.Host, "dbname", cfg.Storage.DBName)

			orch := pipeline.New(stor, slog.Default())
			srv := server.NewServer(cfg.Server.Addr, orch)
			return srv.Start()
		},
	}
}

func printReport(cmd *cobra.Command, report entity.Report) {
	cmd.Printf("run %s (%s): %s\n", report.RunID, report.Source, report.Status)
	for _, stage := range report.Stages {
		cmd.Printf("  %-22s %s\n", stage.Stage, stage.Message)
	}
	if report.Error != "" {
		cmd.Printf("  error: %s\n", report.Error)
	}
}

func setupLogger(cfg config.Log) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
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
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

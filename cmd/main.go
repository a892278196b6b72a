package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"dashboard-csv-exporter/internal/client"
	"dashboard-csv-exporter/internal/config"
	"dashboard-csv-exporter/internal/db"
	"dashboard-csv-exporter/internal/render"
	"dashboard-csv-exporter/internal/repository"
	"dashboard-csv-exporter/internal/service"
)

func main() {
	var dumpJSON bool
	flag.BoolVar(&dumpJSON, "j", false, "also write the dashboard JSON document")
	flag.BoolVar(&dumpJSON, "json", false, "also write the dashboard JSON document")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-j|--json] [dashboard-id]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	setupLogger(cfg.LogLevel)

	dashboardID := cfg.DashboardID
	if flag.NArg() > 0 {
		dashboardID = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo := repository.NewNoopExportRepository()
	if cfg.LedgerEnabled() {
		conn, err := db.NewConnection(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("connect clickhouse")
		}
		defer conn.Close()

		if err := db.RunMigrations(ctx, conn); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
		repo = repository.NewExportRepository(conn)
	}

	apiClient := client.New(client.Options{
		DashboardEndpoint: cfg.DashboardEndpoint,
		MetricsQueryURL:   cfg.MetricsQueryURL(),
		APIToken:          cfg.APIToken,
		Timeout:           cfg.HTTPTimeout,
	})

	exportService := service.NewExportService(apiClient, repo, render.NewPrinter(os.Stdout), service.Options{
		Tenant:            cfg.TenantName(),
		OutputDir:         cfg.OutputDir,
		DefaultResolution: cfg.DefaultResolution,
		DashboardJSONPath: cfg.DashboardJSONPath,
	})

	summary, err := exportService.Run(ctx, service.RunRequest{DashboardID: dashboardID, DumpJSON: dumpJSON})
	if err != nil {
		log.Fatal().Err(err).Str("dashboard_id", dashboardID).Msg("export failed")
	}

	log.Info().
		Str("run_id", summary.RunID).
		Str("dashboard", summary.DashboardName).
		Int("metrics", summary.MetricsFound).
		Int("files", len(summary.FilesWritten)).
		Msg("done")
}

func setupLogger(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rx3lixir/loadgen-service/internal/config"
	"github.com/rx3lixir/loadgen-service/internal/db"
	"github.com/rx3lixir/loadgen-service/internal/generator"
	"github.com/rx3lixir/loadgen-service/internal/loader"
	"github.com/rx3lixir/loadgen-service/pkg/health"
	"github.com/rx3lixir/loadgen-service/pkg/logger"
	"github.com/rx3lixir/loadgen-service/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		var partial *loader.PartialRunError
		if errors.As(err, &partial) {
			for _, o := range partial.Summary.FailedShares() {
				log.Error("Share failed",
					"worker_id", o.WorkerID,
					"inserted", o.Inserted,
					"assigned", o.Assigned,
					"error", o.Err)
			}
		}
		log.Error("Load failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("Starting loadgen",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Database,
		"total_records", cfg.TotalRecords,
		"batch_size", cfg.BatchSize,
		"threads", cfg.Threads)

	// Сервер метрик живет до конца прогона
	metricsServer := metrics.NewMetricsServer(cfg.MetricsAddr, log)
	go func() {
		if err := metricsServer.Start(); err != nil {
			log.Error("Metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		metricsServer.Shutdown(shutdownCtx)
	}()

	columns := generator.Columns()
	dburl := cfg.DatabaseURL()

	// Проверяем базу до начала работы
	probe, err := db.Connect(ctx, dburl, columns)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := health.Run(ctx, map[string]health.Checker{
		"database": health.PostgresChecker(probe),
	}); err != nil {
		probe.Close(ctx)
		return err
	}
	probe.Close(ctx)

	coord, err := loader.New(loader.Config{
		Budget: loader.RecordBudget{
			TotalTarget: cfg.TotalRecords,
			BatchSize:   cfg.BatchSize,
			WorkerCount: cfg.Threads,
		},
		SourceTable: cfg.SourceTable,
		TargetTable: cfg.TargetTable,
		Sinks: func(ctx context.Context, workerID int) (loader.Sink, error) {
			sink, err := db.Connect(ctx, dburl, columns)
			if err != nil {
				return nil, err
			}
			if err := sink.PrepareSession(ctx); err != nil {
				log.Warn("Session tuning failed, continuing",
					"worker_id", workerID, "error", err)
			}
			return sink, nil
		},
		Synthesizers: func(workerID int) loader.Synthesizer {
			return generator.New(workerID)
		},
	}, log)
	if err != nil {
		return err
	}

	if err := coord.PrepareTable(ctx); err != nil {
		return err
	}

	summary, err := coord.Run(ctx)
	if summary != nil {
		log.Info("Run finished",
			"inserted", summary.TotalInserted,
			"target", summary.Target,
			"elapsed", summary.Elapsed.Round(time.Second).String(),
			"rows_per_sec", int64(summary.RowsPerSecond),
			"failed_shares", len(summary.FailedShares()))
	}
	return err
}

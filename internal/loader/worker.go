package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/rx3lixir/loadgen-service/pkg/logger"
	"github.com/rx3lixir/loadgen-service/pkg/metrics"
)

// Worker вставляет свою долю бюджета через собственное соединение.
type Worker struct {
	share       WorkerShare
	sink        Sink
	builder     *BatchBuilder
	progress    *Progress
	targetTable string
	log         logger.Logger
}

// NewWorker создает воркера для одной доли.
func NewWorker(share WorkerShare, sink Sink, builder *BatchBuilder, progress *Progress, targetTable string, log logger.Logger) *Worker {
	return &Worker{
		share:       share,
		sink:        sink,
		builder:     builder,
		progress:    progress,
		targetTable: targetTable,
		log:         log.With("worker_id", share.WorkerID),
	}
}

// Run выполняет цикл воркера: собрать батч, записать, засчитать
// прогресс. Первая же ошибка записи прерывает воркера; частично
// вставленные до этого батчи остаются засчитанными. Ошибка не
// затрагивает остальных воркеров.
func (w *Worker) Run(ctx context.Context) ShareOutcome {
	outcome := ShareOutcome{
		WorkerID: w.share.WorkerID,
		Assigned: w.share.AssignedCount,
	}

	remaining := w.share.AssignedCount
	for remaining > 0 {
		batch := w.builder.Next(remaining)

		start := time.Now()
		err := w.sink.ExecuteBatch(ctx, w.targetTable, batch)
		metrics.RecordBatch(w.share.WorkerID, len(batch), time.Since(start), err)

		if err != nil {
			metrics.RecordWorkerFailure()
			outcome.Err = &ShareError{
				WorkerID: w.share.WorkerID,
				Inserted: outcome.Inserted,
				Cause:    fmt.Errorf("batch submission failed: %w", err),
			}
			return outcome
		}

		rows := int64(len(batch))
		outcome.Inserted += rows
		remaining -= rows

		w.observe(w.progress.Add(rows))
	}

	w.log.Info("Worker completed its share", "rows", outcome.Inserted)
	return outcome
}

// observe публикует событие прогресса после успешного батча.
func (w *Worker) observe(total int64) {
	obs := w.progress.Observe()
	metrics.UpdateProgress(total, obs.Target)

	fields := []any{
		"inserted_total", obs.Inserted,
		"target", obs.Target,
		"percent", fmt.Sprintf("%.2f", obs.Percent),
		"rows_per_sec", int64(obs.RowsPerSecond),
	}
	if obs.ETAKnown {
		fields = append(fields, "eta_seconds", int64(obs.ETASeconds))
	} else {
		fields = append(fields, "eta_seconds", "indeterminate")
	}

	w.log.Info("progress", fields...)
}

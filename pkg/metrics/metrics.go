package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики загрузчика
var (
	// Счетчик вставленных строк по воркерам
	RowsInsertedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadgen_rows_inserted_total",
			Help: "Total number of rows inserted into the target table",
		},
		[]string{"worker_id"},
	)

	// Счетчик батчей по статусу
	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadgen_batches_total",
			Help: "Total number of submitted batches",
		},
		[]string{"worker_id", "status"},
	)

	// Длительность записи одного батча
	BatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loadgen_batch_duration_seconds",
			Help:    "Duration of batch submissions",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"worker_id"},
	)

	// Счетчик отказавших воркеров
	WorkerFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loadgen_worker_failures_total",
			Help: "Total number of workers that aborted their share",
		},
	)

	// Текущий прогресс загрузки
	ProgressRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "loadgen_progress_ratio",
			Help: "Inserted rows as a fraction of the total target",
		},
	)
)

// RecordBatch фиксирует результат отправки одного батча.
func RecordBatch(workerID int, rows int, duration time.Duration, err error) {
	id := strconv.Itoa(workerID)

	status := "ok"
	if err != nil {
		status = "error"
	} else {
		RowsInsertedTotal.WithLabelValues(id).Add(float64(rows))
	}

	BatchesTotal.WithLabelValues(id, status).Inc()
	BatchDuration.WithLabelValues(id).Observe(duration.Seconds())
}

// RecordWorkerFailure фиксирует аварийное завершение воркера.
func RecordWorkerFailure() {
	WorkerFailuresTotal.Inc()
}

// UpdateProgress обновляет gauge прогресса.
func UpdateProgress(inserted, target int64) {
	if target > 0 {
		ProgressRatio.Set(float64(inserted) / float64(target))
	}
}

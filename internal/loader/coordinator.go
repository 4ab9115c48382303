package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rx3lixir/loadgen-service/pkg/logger"
)

// Config описывает один прогон загрузчика.
type Config struct {
	Budget       RecordBudget
	SourceTable  string
	TargetTable  string
	Sinks        SinkFactory
	Synthesizers SynthesizerFactory
}

func (c Config) validate() error {
	if c.Budget.TotalTarget < 0 {
		return fmt.Errorf("total target must be non-negative, got %d", c.Budget.TotalTarget)
	}
	if c.Budget.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.Budget.BatchSize)
	}
	if c.Budget.WorkerCount <= 0 {
		return fmt.Errorf("worker count must be positive, got %d", c.Budget.WorkerCount)
	}
	if c.SourceTable == "" || c.TargetTable == "" {
		return fmt.Errorf("source and target tables must be set")
	}
	if c.Sinks == nil {
		return fmt.Errorf("sink factory must be set")
	}
	if c.Synthesizers == nil {
		return fmt.Errorf("synthesizer factory must be set")
	}
	return nil
}

// Coordinator делит бюджет между воркерами, запускает их и
// собирает итоги. Единственная точка синхронизации - ожидание
// завершения всех воркеров.
type Coordinator struct {
	cfg Config
	log logger.Logger
}

// New создает координатор. Невыполнимый бюджет отклоняется
// до запуска воркеров.
func New(cfg Config, log logger.Logger) (*Coordinator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	return &Coordinator{cfg: cfg, log: log}, nil
}

// PrepareTable клонирует структуру исходной таблицы в целевую.
// Выполняется один раз до запуска воркеров; повторный вызов
// безопасен.
func (c *Coordinator) PrepareTable(ctx context.Context) error {
	sink, err := c.cfg.Sinks(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to connect for table preparation: %w", err)
	}
	defer sink.Close(ctx)

	c.log.Info("Preparing target table",
		"source", c.cfg.SourceTable,
		"target", c.cfg.TargetTable)

	if err := sink.CreateTableLike(ctx, c.cfg.SourceTable, c.cfg.TargetTable); err != nil {
		return fmt.Errorf("table preparation failed: %w", err)
	}
	return nil
}

// Run запускает по воркеру на долю и блокируется до завершения
// всех. Отказ одной доли не отменяет соседние: каждая доля
// независима и владеет своим соединением. Итог успешен, только
// если выполнены все доли; иначе возвращается PartialRunError
// с разбивкой, а частичные вставки остаются засчитанными.
func (c *Coordinator) Run(ctx context.Context) (*RunSummary, error) {
	shares, err := Partition(c.cfg.Budget.TotalTarget, c.cfg.Budget.WorkerCount)
	if err != nil {
		return nil, fmt.Errorf("failed to partition budget: %w", err)
	}

	c.log.Info("Starting load",
		"total_records", c.cfg.Budget.TotalTarget,
		"workers", len(shares),
		"batch_size", c.cfg.Budget.BatchSize)

	progress := NewProgress(c.cfg.Budget.TotalTarget)
	outcomes := make([]ShareOutcome, len(shares))

	var wg sync.WaitGroup
	start := time.Now()

	for i, share := range shares {
		wg.Add(1)
		go func(i int, share WorkerShare) {
			defer wg.Done()
			outcomes[i] = c.runShare(ctx, share, progress)
		}(i, share)
	}

	wg.Wait()

	summary := c.summarize(outcomes, progress, time.Since(start))
	if len(summary.FailedShares()) > 0 {
		return summary, &PartialRunError{Summary: summary}
	}
	return summary, nil
}

// runShare выполняет одну долю: открывает эксклюзивное соединение
// и гоняет цикл воркера. Ошибка соединения фатальна для доли.
func (c *Coordinator) runShare(ctx context.Context, share WorkerShare, progress *Progress) ShareOutcome {
	if share.AssignedCount == 0 {
		return ShareOutcome{WorkerID: share.WorkerID}
	}

	sink, err := c.cfg.Sinks(ctx, share.WorkerID)
	if err != nil {
		return ShareOutcome{
			WorkerID: share.WorkerID,
			Assigned: share.AssignedCount,
			Err: &ShareError{
				WorkerID: share.WorkerID,
				Cause:    fmt.Errorf("failed to connect: %w", err),
			},
		}
	}
	defer sink.Close(ctx)

	builder := NewBatchBuilder(c.cfg.Synthesizers(share.WorkerID), c.cfg.Budget.BatchSize)
	worker := NewWorker(share, sink, builder, progress, c.cfg.TargetTable, c.log)

	return worker.Run(ctx)
}

// summarize сводит итоги воркеров в финальный отчет.
func (c *Coordinator) summarize(outcomes []ShareOutcome, progress *Progress, elapsed time.Duration) *RunSummary {
	inserted, _ := progress.Snapshot()

	summary := &RunSummary{
		TotalInserted: inserted,
		Target:        c.cfg.Budget.TotalTarget,
		Elapsed:       elapsed,
		Outcomes:      outcomes,
	}
	if seconds := elapsed.Seconds(); seconds > 0 {
		summary.RowsPerSecond = float64(inserted) / seconds
	}

	for _, o := range outcomes {
		if o.Succeeded() {
			c.log.Info("Worker finished", "worker_id", o.WorkerID, "rows", o.Inserted)
		} else {
			c.log.Error("Worker failed",
				"worker_id", o.WorkerID,
				"inserted", o.Inserted,
				"assigned", o.Assigned,
				"error", o.Err)
		}
	}

	return summary
}

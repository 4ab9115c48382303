package loader

import (
	"context"
	"time"
)

// Sink - одно эксклюзивное соединение с хранилищем.
// Никогда не разделяется между воркерами.
type Sink interface {
	CreateTableLike(ctx context.Context, source, target string) error
	ExecuteBatch(ctx context.Context, table string, rows [][]any) error
	Close(ctx context.Context) error
}

// Synthesizer выдает значения одной синтетической строки за вызов.
type Synthesizer interface {
	NextRow() []any
}

// SinkFactory открывает соединение для воркера.
// Каждый воркер получает собственное соединение.
type SinkFactory func(ctx context.Context, workerID int) (Sink, error)

// SynthesizerFactory создает генератор строк для воркера.
type SynthesizerFactory func(workerID int) Synthesizer

// RecordBudget описывает общий объем работы.
type RecordBudget struct {
	TotalTarget int64
	BatchSize   int
	WorkerCount int
}

// WorkerShare - доля общего бюджета, закрепленная за одним воркером.
// Неизменяема после вычисления.
type WorkerShare struct {
	WorkerID      int
	AssignedCount int64
}

// ShareOutcome - итог работы одного воркера: либо доля выполнена
// полностью, либо Err не nil и Inserted отражает частичный прогресс.
type ShareOutcome struct {
	WorkerID int
	Assigned int64
	Inserted int64
	Err      error
}

// Succeeded сообщает, выполнил ли воркер свою долю целиком.
func (o ShareOutcome) Succeeded() bool {
	return o.Err == nil
}

// RunSummary - финальный отчет о прогоне. Создается один раз
// после завершения всех воркеров.
type RunSummary struct {
	TotalInserted int64
	Target        int64
	Elapsed       time.Duration
	RowsPerSecond float64
	Outcomes      []ShareOutcome
}

// FailedShares возвращает итоги воркеров, не выполнивших долю.
func (s *RunSummary) FailedShares() []ShareOutcome {
	var failed []ShareOutcome
	for _, o := range s.Outcomes {
		if !o.Succeeded() {
			failed = append(failed, o)
		}
	}
	return failed
}

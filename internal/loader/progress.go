package loader

import (
	"sync/atomic"
	"time"
)

// Progress - общий счетчик прогона. Единственное разделяемое
// изменяемое состояние на горячем пути: воркеры трогают его
// один раз на батч атомарным инкрементом, без блокировок.
type Progress struct {
	inserted  atomic.Int64
	target    int64
	startedAt time.Time
}

// NewProgress создает трекер с нулевым счетчиком.
func NewProgress(target int64) *Progress {
	return &Progress{
		target:    target,
		startedAt: time.Now(),
	}
}

// Add атомарно прибавляет n к счетчику и возвращает новое значение.
func (p *Progress) Add(n int64) int64 {
	return p.inserted.Add(n)
}

// Snapshot возвращает текущий счетчик и время с момента старта.
// Безопасен при любом числе параллельных Add; последовательные
// вызовы никогда не возвращают убывающий счетчик.
func (p *Progress) Snapshot() (inserted int64, elapsed time.Duration) {
	return p.inserted.Load(), time.Since(p.startedAt)
}

// Target возвращает общую цель прогона.
func (p *Progress) Target() int64 {
	return p.target
}

// Observation - снимок прогресса для отчетности.
type Observation struct {
	Inserted      int64
	Target        int64
	Percent       float64
	RowsPerSecond float64
	ETASeconds    float64
	ETAKnown      bool
}

// Observe вычисляет производные показатели: процент выполнения,
// среднюю скорость с момента старта и оценку оставшегося времени.
// Средняя скорость вместо мгновенной сглаживает неравномерность
// завершения батчей. Пока скорость нулевая, ETA неопределим.
func (p *Progress) Observe() Observation {
	inserted, elapsed := p.Snapshot()

	obs := Observation{
		Inserted: inserted,
		Target:   p.target,
	}

	if p.target > 0 {
		obs.Percent = float64(inserted) / float64(p.target) * 100
	}

	seconds := elapsed.Seconds()
	if seconds > 0 {
		obs.RowsPerSecond = float64(inserted) / seconds
	}

	if obs.RowsPerSecond > 0 {
		obs.ETASeconds = float64(p.target-inserted) / obs.RowsPerSecond
		obs.ETAKnown = true
	}

	return obs
}

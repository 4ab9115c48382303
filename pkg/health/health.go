package health

import (
	"context"
	"fmt"
	"time"
)

// Status состояние одной проверки
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// CheckResult результат одной проверки здоровья
type CheckResult struct {
	Status  Status         `json:"status"`
	Error   string         `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Checker выполняет одну проверку здоровья
type Checker interface {
	Check(ctx context.Context) CheckResult
}

// CheckerFunc адаптер функции к интерфейсу Checker
type CheckerFunc func(ctx context.Context) CheckResult

func (f CheckerFunc) Check(ctx context.Context) CheckResult {
	return f(ctx)
}

// Run прогоняет именованные проверки и возвращает ошибку,
// если хотя бы одна из них завершилась неуспешно.
func Run(ctx context.Context, checks map[string]Checker) error {
	for name, check := range checks {
		if result := check.Check(ctx); result.Status != StatusUp {
			return fmt.Errorf("health check %q failed: %s", name, result.Error)
		}
	}
	return nil
}

// Pinger абстракция соединения с базой для проверки
type Pinger interface {
	Ping(ctx context.Context) error
}

// PostgresChecker проверка PostgreSQL через одно соединение
func PostgresChecker(conn Pinger) Checker {
	return CheckerFunc(func(ctx context.Context) CheckResult {
		start := time.Now()

		// Пингуем базу
		err := conn.Ping(ctx)
		duration := time.Since(start)

		if err != nil {
			return CheckResult{
				Status: StatusDown,
				Error:  err.Error(),
				Details: map[string]any{
					"duration_ms": duration.Milliseconds(),
				},
			}
		}

		return CheckResult{
			Status: StatusUp,
			Details: map[string]any{
				"duration_ms": duration.Milliseconds(),
			},
		}
	})
}

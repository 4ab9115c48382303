package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Интерфейс для абстракции методов базы данных от pgx.Conn
type PgConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Sink реализует запись батчей в PostgreSQL через одно
// эксклюзивное соединение. Соединение никогда не разделяется
// между воркерами.
type Sink struct {
	conn    PgConn
	columns []string
}

// NewSink создает новый Sink поверх готового соединения.
func NewSink(conn PgConn, columns []string) *Sink {
	return &Sink{
		conn:    conn,
		columns: columns,
	}
}

// Connect открывает и проверяет одно соединение к PostgreSQL.
func Connect(parentCtx context.Context, dburl string, columns []string) (*Sink, error) {
	ctx, cancel := context.WithTimeout(parentCtx, time.Second*3)
	defer cancel()

	conn, err := pgx.Connect(ctx, dburl)
	if err != nil {
		return nil, err
	}

	// Проверяем соединение
	if err = conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, err
	}

	return NewSink(conn, columns), nil
}

// PrepareSession отключает синхронный коммит для ускорения вставки.
// Действует только на это соединение.
func (s *Sink) PrepareSession(ctx context.Context) error {
	if _, err := s.conn.Exec(ctx, "SET synchronous_commit TO off"); err != nil {
		return fmt.Errorf("failed to tune session: %w", err)
	}
	return nil
}

// CreateTableLike клонирует структуру исходной таблицы в целевую.
// Идемпотентно: если целевая таблица уже существует, ничего не делает.
func (s *Sink) CreateTableLike(ctx context.Context, source, target string) error {
	sql := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (LIKE %s INCLUDING ALL)",
		pgx.Identifier{target}.Sanitize(),
		pgx.Identifier{source}.Sanitize(),
	)

	if _, err := s.conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to create table %s like %s: %w", target, source, err)
	}
	return nil
}

// ExecuteBatch записывает батч строк одной операцией COPY.
// COPY атомарен: либо весь батч зафиксирован, либо ничего.
func (s *Sink) ExecuteBatch(ctx context.Context, table string, rows [][]any) error {
	copied, err := s.conn.CopyFrom(ctx, pgx.Identifier{table}, s.columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("batch copy into %s failed: %w", table, err)
	}
	if copied != int64(len(rows)) {
		return fmt.Errorf("batch copy into %s incomplete: %d of %d rows", table, copied, len(rows))
	}
	return nil
}

// Ping проверяет живость соединения.
func (s *Sink) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// Close закрывает соединение.
func (s *Sink) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

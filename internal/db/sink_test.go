package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn реализует PgConn для тестов без базы
type fakeConn struct {
	execSQL   []string
	execErr   error
	copyRows  int64
	copyErr   error
	copyTable pgx.Identifier
	copyCols  []string
	pingErr   error
	closed    bool
}

func (c *fakeConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	c.execSQL = append(c.execSQL, sql)
	return pgconn.CommandTag{}, c.execErr
}

func (c *fakeConn) CopyFrom(_ context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	c.copyTable = tableName
	c.copyCols = columnNames

	var n int64
	for rowSrc.Next() {
		n++
	}
	if c.copyErr != nil {
		return 0, c.copyErr
	}
	if c.copyRows >= 0 {
		return c.copyRows, nil
	}
	return n, nil
}

func (c *fakeConn) Ping(_ context.Context) error {
	return c.pingErr
}

func (c *fakeConn) Close(_ context.Context) error {
	c.closed = true
	return nil
}

func newFakeConn() *fakeConn {
	return &fakeConn{copyRows: -1}
}

func TestCreateTableLikeIsCreateIfAbsent(t *testing.T) {
	conn := newFakeConn()
	sink := NewSink(conn, []string{"a"})

	err := sink.CreateTableLike(context.Background(), "channel_txn", "channel_txn_temp")
	require.NoError(t, err)

	require.Len(t, conn.execSQL, 1)
	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS "channel_txn_temp" (LIKE "channel_txn" INCLUDING ALL)`,
		conn.execSQL[0])
}

func TestCreateTableLikeError(t *testing.T) {
	conn := newFakeConn()
	conn.execErr = errors.New("permission denied")
	sink := NewSink(conn, []string{"a"})

	err := sink.CreateTableLike(context.Background(), "src", "dst")
	assert.ErrorContains(t, err, "permission denied")
}

func TestExecuteBatch(t *testing.T) {
	conn := newFakeConn()
	sink := NewSink(conn, []string{"channel_id", "unique_id"})

	rows := [][]any{{1, "a"}, {2, "b"}, {3, "c"}}
	err := sink.ExecuteBatch(context.Background(), "channel_txn_temp", rows)
	require.NoError(t, err)

	assert.Equal(t, pgx.Identifier{"channel_txn_temp"}, conn.copyTable)
	assert.Equal(t, []string{"channel_id", "unique_id"}, conn.copyCols)
}

func TestExecuteBatchCopyError(t *testing.T) {
	conn := newFakeConn()
	conn.copyErr = errors.New("connection reset")
	sink := NewSink(conn, []string{"a"})

	err := sink.ExecuteBatch(context.Background(), "t", [][]any{{1}})
	assert.ErrorContains(t, err, "connection reset")
}

func TestExecuteBatchIncompleteCopy(t *testing.T) {
	conn := newFakeConn()
	conn.copyRows = 2
	sink := NewSink(conn, []string{"a"})

	err := sink.ExecuteBatch(context.Background(), "t", [][]any{{1}, {2}, {3}})
	assert.ErrorContains(t, err, "incomplete")
}

func TestClose(t *testing.T) {
	conn := newFakeConn()
	sink := NewSink(conn, []string{"a"})

	require.NoError(t, sink.Close(context.Background()))
	assert.True(t, conn.closed)
}

func TestPrepareSession(t *testing.T) {
	conn := newFakeConn()
	sink := NewSink(conn, []string{"a"})

	require.NoError(t, sink.PrepareSession(context.Background()))
	require.Len(t, conn.execSQL, 1)
	assert.Contains(t, conn.execSQL[0], "synchronous_commit")
}

package mockclickhouseconnection

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/mock"
)

// Connection is a clickhouse.Conn double. The ledger only uses Exec,
// PrepareBatch, Ping and Close; the rest exist to satisfy the interface.
type Connection struct {
	mock.Mock
}

var _ clickhouse.Conn = &Connection{}

func (m *Connection) Exec(ctx context.Context, query string, args ...any) error {
	callArgs := append([]any{ctx, query}, args...)
	return m.Called(callArgs...).Error(0)
}

func (m *Connection) PrepareBatch(ctx context.Context, query string) (driver.Batch, error) {
	args := m.Called(ctx, query)
	if batch, ok := args.Get(0).(driver.Batch); ok {
		return batch, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Connection) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Connection) Close() error {
	return m.Called().Error(0)
}

func (m *Connection) AsyncInsert(ctx context.Context, query string, wait bool) error {
	return m.Called(ctx, query, wait).Error(0)
}

func (m *Connection) Contributors() []string {
	return m.Called().Get(0).([]string)
}

func (m *Connection) ServerVersion() (*driver.ServerVersion, error) {
	args := m.Called()
	return args.Get(0).(*driver.ServerVersion), args.Error(1)
}

func (m *Connection) Select(ctx context.Context, dest any, query string, args ...any) error {
	return m.Called(ctx, dest, query, args).Error(0)
}

func (m *Connection) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	callArgs := m.Called(ctx, query, args)
	return callArgs.Get(0).(driver.Rows), callArgs.Error(1)
}

func (m *Connection) QueryRow(ctx context.Context, query string, args ...any) driver.Row {
	return m.Called(ctx, query, args).Get(0).(driver.Row)
}

func (m *Connection) Stats() driver.Stats {
	return m.Called().Get(0).(driver.Stats)
}

// Package storetest provides an in-memory sqlite store with the platform schema for repository tests
package storetest

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/stretchr/testify/require"
)

//go:embed schema.sql
var schema string

var seq int64

// NewDB open a fresh in-memory database with all tables created, closed on test cleanup
func NewDB(t *testing.T) driver.ITransactionalDB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := driver.GetDBConnection(&driver.DBConfig{
		Driver: "sqlite3",
		Schema: fmt.Sprintf("file:%s_%d", name, atomic.AddInt64(&seq, 1)),
		Query:  "mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close(context.Background())
	})

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := conn.ExecContext(context.Background(), stmt)
		require.NoError(t, err)
	}
	return conn
}

// Exec run statements that must succeed, used to seed fixtures
func Exec(t *testing.T, conn driver.ITransactionalDB, query string, args ...interface{}) {
	t.Helper()
	_, err := conn.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
}

// FailingDB fails every statement containing Match, other statements reach the wrapped store
type FailingDB struct {
	driver.ITransactionalDB
	Match string
	Err   error
}

var _ driver.ITransactionalDB = &FailingDB{}

// FailOn wrap conn so statements containing match fail with err, an empty match fails everything
func FailOn(conn driver.ITransactionalDB, match string, err error) *FailingDB {
	return &FailingDB{conn, match, err}
}

func (fd *FailingDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if strings.Contains(query, fd.Match) {
		return nil, fd.Err
	}
	return fd.ITransactionalDB.ExecContext(ctx, query, args...)
}

func (fd *FailingDB) QueryContext(ctx context.Context, query string, args ...interface{}) (driver.ISQLRows, error) {
	if strings.Contains(query, fd.Match) {
		return nil, fd.Err
	}
	return fd.ITransactionalDB.QueryContext(ctx, query, args...)
}

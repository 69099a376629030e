package driver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInPlaceholders(t *testing.T) {
	assert.Equal(t, "", InPlaceholders(1, 0))
	assert.Equal(t, "$1", InPlaceholders(1, 1))
	assert.Equal(t, "$2, $3, $4", InPlaceholders(2, 3))
}

func TestDialectAdapters(t *testing.T) {
	query := `SELECT "id" FROM "modules"
		WHERE "course_id" = $1 AND "order" > $2`

	assert.Equal(t, "SELECT `id` FROM `modules` WHERE `course_id` = ? AND `order` > ?", mysqlAdapter(query))
	assert.Equal(t, `SELECT "id" FROM "modules" WHERE "course_id" = ?1 AND "order" > ?2`, sqliteAdapter(query))
	assert.Equal(t, `SELECT "id" FROM "modules" WHERE "course_id" = $1 AND "order" > $2`, pgsqlAdapter(query))
}

func TestGetDSN(t *testing.T) {
	assert.Equal(t, "root:pass@tcp(localhost:3306)/course?parseTime=true", getDSN(&DBConfig{
		Driver: "mysql", User: "root", Password: "pass", Protocol: "tcp",
		Host: "localhost", Port: 3306, Schema: "course", Query: "parseTime=true",
	}))
	assert.Equal(t, "course.db", getDSN(&DBConfig{Driver: "sqlite3", Schema: "course.db"}))
}

func TestGetDBConnection_UnsupportedDriver(t *testing.T) {
	_, err := GetDBConnection(&DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestSQLiteWrapper(t *testing.T) {
	ctx := context.Background()
	conn, err := GetDBConnection(&DBConfig{Driver: "sqlite3", Schema: "file:driver_test", Query: "mode=memory&cache=shared"})
	require.NoError(t, err)
	defer conn.Close(ctx)
	require.NoError(t, conn.Ping(ctx))

	_, err = conn.ExecContext(ctx, `CREATE TABLE "items" ("id" TEXT PRIMARY KEY, "order" INTEGER NOT NULL)`)
	require.NoError(t, err)

	tx, err := conn.BeginTx(ctx, nil)
	require.NoError(t, err)
	for i, id := range []string{"a", "b", "c"} {
		_, err = tx.ExecContext(ctx, `INSERT INTO "items" ("id", "order") VALUES ($1, $2)`, id, i+1)
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit(ctx))

	ids := []string{"a", "c"}
	rows, err := conn.QueryContext(ctx,
		`SELECT "id" FROM "items" WHERE "id" IN (`+InPlaceholders(1, len(ids))+`) ORDER BY "order" DESC`,
		StringArgs(ids)...)
	require.NoError(t, err)
	defer rows.Close()

	var got []string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		got = append(got, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"c", "a"}, got)

	rows, err = conn.QueryContext(ctx, `SELECT COUNT(*) FROM "items" WHERE "order" > $1`, 1)
	require.NoError(t, err)
	count, err := ScanCount(rows)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSetClause(t *testing.T) {
	set := new(SetClause)
	set.Add("title", "go").Add("order", 2)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, `"title" = $1, "order" = $2`, set.String())
	assert.Equal(t, "$3", set.Next())
	assert.Equal(t, []interface{}{"go", 2, "id"}, set.Args("id"))
}

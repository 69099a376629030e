package driver

import (
	"database/sql"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteConn Returns a SQLite connection pool, dsn is the database file or a memory uri
func NewSQLiteConn(dsn string, cfg *DBConfig) (ITransactionalDB, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway
	conn.SetMaxOpenConns(1)
	return &SQLWrapper{conn, sqliteAdapter}, nil
}

// sqlite understands double quoted identifiers, only numbered params need rewriting
func sqliteAdapter(query string) string {
	query = DollarPlaceholderPattern.ReplaceAllString(query, "?$1")
	query = SpacePattern.ReplaceAllString(query, " ")
	return query
}

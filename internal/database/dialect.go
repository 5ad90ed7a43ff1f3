package database

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect names a SQL backend.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know about.
	sqlx.BindDriver(string(SQLite), sqlx.QUESTION)
}

func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(s); d {
	case SQLite, Postgres, MySQL:
		return d, nil
	}
	return "", fmt.Errorf("database: unknown sql dialect %q", s)
}

// upsertQuery replaces name and lastname when the id is already taken.
func (d Dialect) upsertQuery() string {
	if d == MySQL {
		return `INSERT INTO users (id, name, lastname) VALUES (:id, :name, :lastname)
			ON DUPLICATE KEY UPDATE name = VALUES(name), lastname = VALUES(lastname)`
	}
	return `INSERT INTO users (id, name, lastname) VALUES (:id, :name, :lastname)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, lastname = excluded.lastname`
}

// isDuplicateKey reports whether err is a primary key collision on any of
// the SQL backends.
func isDuplicateKey(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// the low byte of an extended result code is its primary code
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

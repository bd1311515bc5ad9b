package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/kotche/notes/internal/repository/migrations"
)

// OpenDB opens and pings a database for the dialect and applies migrations.
func OpenDB(ctx context.Context, dialect, dsn string) (*sql.DB, error) {
	driverName := dialect
	if dialect == migrations.DialectSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}

	if err = migrations.Up(db, dialect); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// sqliteDSN enables foreign keys on every pooled connection so that deleting a
// user cascades to its notes.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

const (
	violationNone = iota
	violationUnique
	violationForeignKey
)

func constraintViolation(err error) int {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return violationUnique
		case "23503":
			return violationForeignKey
		}
		return violationNone
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return violationUnique
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return violationForeignKey
		}
	}
	return violationNone
}

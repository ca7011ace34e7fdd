package database

import (
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// Dialect carries the bits of SQL that differ between the stores we run on.
type Dialect struct {
	Name string
	// ILike is the case-insensitive pattern match operator.
	ILike string
}

var (
	Postgres = Dialect{Name: "postgres", ILike: "ILIKE"}
	// SQLite's LIKE is case-insensitive for ASCII.
	SQLite = Dialect{Name: "sqlite3", ILike: "LIKE"}
)

// GetDbConn opens a postgres connection pool and checks it is reachable.
func GetDbConn(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// CloseDbConn closes db conn
func CloseDbConn(conn *sql.DB) {
	conn.Close()
}

const pqUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint failure from
// postgres or sqlite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	// sqlite3.Error is only linked into test binaries, match on the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsUniqueViolationOn narrows IsUniqueViolation to the UNIQUE constraint on
// table.column. Postgres names it <table>_<column>_key, sqlite names the
// column in the message.
func IsUniqueViolationOn(err error, table, column string) bool {
	if !IsUniqueViolation(err) {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint == table+"_"+column+"_key"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: "+table+"."+column)
}

// Package dbtest provides an in-memory sqlite store with the jobly schema and
// a fixed set of fixtures for repository and handler tests.
package dbtest

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// schema is the sqlite rendition of migrations/000001_init.up.sql. Keep the
// two in step: TestSQLiteSchemaMatchesMigration compares their tables and columns.
const schema = `
CREATE TABLE companies (
  handle        VARCHAR(25) PRIMARY KEY CHECK (handle = lower(handle)),
  name          TEXT UNIQUE NOT NULL,
  num_employees INTEGER CHECK (num_employees >= 0),
  description   TEXT NOT NULL,
  logo_url      TEXT
);

CREATE TABLE jobs (
  id             INTEGER PRIMARY KEY AUTOINCREMENT,
  title          TEXT NOT NULL,
  salary         INTEGER CHECK (salary >= 0),
  equity         NUMERIC CHECK (equity <= 1.0),
  company_handle VARCHAR(25) NOT NULL REFERENCES companies ON DELETE CASCADE
);

CREATE TABLE users (
  username   VARCHAR(25) PRIMARY KEY,
  password   TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name  TEXT NOT NULL,
  email      TEXT NOT NULL CHECK (instr(email, '@') > 1),
  is_admin   BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE applications (
  username VARCHAR(25) REFERENCES users ON DELETE CASCADE,
  job_id   INTEGER REFERENCES jobs ON DELETE CASCADE,
  PRIMARY KEY (username, job_id)
);`

// Open returns an empty store with the schema applied. The pool is pinned to
// one connection because every sqlite :memory: connection is its own database.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

// Fixtures are the ids the store assigned while seeding.
type Fixtures struct {
	// JobIDs is keyed by job title.
	JobIDs map[string]int
}

// Passwords used for the seeded users.
const (
	AdminPassword = "password-admin"
	U1Password    = "password1"
	U2Password    = "password2"
)

// Seed inserts companies c1..c3, four jobs, users admin/u1/u2 and one
// application (u1 applied to Botanist).
func Seed(t *testing.T, db *sql.DB) Fixtures {
	t.Helper()

	companies := []struct {
		handle, name, description, logo string
		employees                      int
	}{
		{"c1", "C1", "Desc1", "http://c1.img", 1},
		{"c2", "C2", "Desc2", "http://c2.img", 2},
		{"c3", "C3", "Desc3", "http://c3.img", 3},
	}
	for _, c := range companies {
		_, err := db.Exec(`INSERT INTO companies (handle, name, description, num_employees, logo_url) VALUES ($1, $2, $3, $4, $5)`,
			c.handle, c.name, c.description, c.employees, c.logo)
		require.NoError(t, err)
	}

	jobs := []struct {
		title   string
		salary  interface{}
		equity  interface{}
		company string
	}{
		{"Botanist", 100000, "0.5", "c1"},
		{"Software Engineer", 120000, "0.1", "c2"},
		{"Cook", 40000, "0", "c1"},
		{"Intern", nil, nil, "c3"},
	}
	fx := Fixtures{JobIDs: map[string]int{}}
	for _, j := range jobs {
		var id int
		err := db.QueryRow(`INSERT INTO jobs (title, salary, equity, company_handle) VALUES ($1, $2, $3, $4) RETURNING id`,
			j.title, j.salary, j.equity, j.company).Scan(&id)
		require.NoError(t, err)
		fx.JobIDs[j.title] = id
	}

	users := []struct {
		username, password, first, last, email string
		admin                                  bool
	}{
		{"admin", AdminPassword, "AdminF", "AdminL", "admin@admin.com", true},
		{"u1", U1Password, "U1F", "U1L", "user1@user.com", false},
		{"u2", U2Password, "U2F", "U2L", "user2@user.com", false},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.MinCost)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO users (username, password, first_name, last_name, email, is_admin) VALUES ($1, $2, $3, $4, $5, $6)`,
			u.username, string(hash), u.first, u.last, u.email, u.admin)
		require.NoError(t, err)
	}

	_, err := db.Exec(`INSERT INTO applications (username, job_id) VALUES ($1, $2)`, "u1", fx.JobIDs["Botanist"])
	require.NoError(t, err)

	return fx
}

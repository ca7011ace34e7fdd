package database_test

import (
	"testing"

	"github.com/0x13a/jobly/internal/database"
	"github.com/0x13a/jobly/internal/database/dbtest"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, database.IsUniqueViolation(nil))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
	assert.True(t, database.IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, database.IsUniqueViolation(errors.Wrap(&pq.Error{Code: "23505"}, "insert")))
	assert.False(t, database.IsUniqueViolation(&pq.Error{Code: "23503"}))
}

func TestIsUniqueViolationSQLite(t *testing.T) {
	db := dbtest.Open(t)
	dbtest.Seed(t, db)

	_, err := db.Exec(`INSERT INTO companies (handle, name, description) VALUES ('c1', 'Other', 'x')`)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	_, err = db.Exec(`INSERT INTO jobs (title, company_handle) VALUES ('x', 'nope')`)
	require.Error(t, err)
	assert.False(t, database.IsUniqueViolation(err))
}

func TestIsUniqueViolationOn(t *testing.T) {
	nameClash := &pq.Error{Code: "23505", Constraint: "companies_name_key"}
	assert.True(t, database.IsUniqueViolationOn(nameClash, "companies", "name"))
	assert.True(t, database.IsUniqueViolationOn(errors.Wrap(nameClash, "insert"), "companies", "name"))
	assert.False(t, database.IsUniqueViolationOn(&pq.Error{Code: "23505", Constraint: "companies_pkey"}, "companies", "name"))
	assert.False(t, database.IsUniqueViolationOn(&pq.Error{Code: "23503", Constraint: "companies_name_key"}, "companies", "name"))
	assert.False(t, database.IsUniqueViolationOn(nil, "companies", "name"))

	db := dbtest.Open(t)
	dbtest.Seed(t, db)

	_, err := db.Exec(`INSERT INTO companies (handle, name, description) VALUES ('other', 'C1', 'x')`)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolationOn(err, "companies", "name"))

	_, err = db.Exec(`INSERT INTO companies (handle, name, description) VALUES ('c1', 'Other', 'x')`)
	require.Error(t, err)
	assert.False(t, database.IsUniqueViolationOn(err, "companies", "name"))
	assert.True(t, database.IsUniqueViolationOn(err, "companies", "handle"))
}

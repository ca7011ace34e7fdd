package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereEmpty(t *testing.T) {
	var w Where
	assert.Equal(t, "", w.Clause())
	assert.Empty(t, w.Args())
}

func TestWherePlaceholdersFollowArgs(t *testing.T) {
	var w Where
	w.Add("title ILIKE $%d", Contains("net"))
	w.AddLiteral("equity > 0")
	w.Add("salary >= $%d", 1000)

	assert.Equal(t, " WHERE title ILIKE $1 AND equity > 0 AND salary >= $2", w.Clause())
	assert.Equal(t, []interface{}{"%net%", 1000}, w.Args())
}

func TestWhereLiteralOnly(t *testing.T) {
	var w Where
	w.AddLiteral("equity > 0")
	assert.Equal(t, " WHERE equity > 0", w.Clause())
	assert.Empty(t, w.Args())
}

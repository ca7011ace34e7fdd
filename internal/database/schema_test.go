package database_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/0x13a/jobly/internal/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createTableRe = regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS (\w+) \((.*?)\n\);`)

// migrationColumns returns the columns of every table the migration creates,
// in declaration order.
func migrationColumns(t *testing.T, path string) map[string][]string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)

	tables := map[string][]string{}
	for _, m := range createTableRe.FindAllStringSubmatch(string(b), -1) {
		cols := []string{}
		for _, line := range strings.Split(m[2], "\n") {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "PRIMARY", "FOREIGN", "UNIQUE", "CHECK", "CONSTRAINT":
				continue
			}
			cols = append(cols, fields[0])
		}
		tables[m[1]] = cols
	}
	return tables
}

func TestSQLiteSchemaMatchesMigration(t *testing.T) {
	want := migrationColumns(t, "migrations/000001_init.up.sql")
	require.NotEmpty(t, want)

	db := dbtest.Open(t)
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	require.NoError(t, err)
	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	rows.Close()

	got := map[string][]string{}
	for _, name := range names {
		info, err := db.Query(`SELECT name FROM pragma_table_info(?) ORDER BY cid`, name)
		require.NoError(t, err)
		cols := []string{}
		for info.Next() {
			var col string
			require.NoError(t, info.Scan(&col))
			cols = append(cols, col)
		}
		require.NoError(t, info.Err())
		info.Close()
		got[name] = cols
	}

	assert.Equal(t, want, got)
}

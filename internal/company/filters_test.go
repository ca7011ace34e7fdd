package company

import (
	"net/url"
	"testing"

	"github.com/0x13a/jobly/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFiltersFromQuery(t *testing.T) {
	f, err := ParseFiltersFromQuery(url.Values{"name": {"net"}, "minEmployees": {"2"}, "maxEmployees": {"30"}})
	require.NoError(t, err)
	assert.Equal(t, "net", f.Name)
	assert.Equal(t, 2, *f.MinEmployees)
	assert.Equal(t, 30, *f.MaxEmployees)

	f, err = ParseFiltersFromQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, Filters{}, f)
}

func TestParseFiltersFromQueryInvalid(t *testing.T) {
	for _, q := range []url.Values{
		{"minEmployees": {"two"}},
		{"maxEmployees": {"-1"}},
		{"nope": {"1"}},
	} {
		_, err := ParseFiltersFromQuery(q)
		require.Error(t, err, q.Encode())
		assert.True(t, errs.IsValidation(err))
	}
}

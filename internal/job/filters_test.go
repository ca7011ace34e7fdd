package job

import (
	"net/url"
	"testing"

	"github.com/0x13a/jobly/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFiltersFromQuery(t *testing.T) {
	f, err := ParseFiltersFromQuery(url.Values{"title": {"dev"}, "minSalary": {"1000"}, "hasEquity": {"true"}})
	require.NoError(t, err)
	assert.Equal(t, "dev", f.Title)
	assert.Equal(t, 1000, *f.MinSalary)
	assert.True(t, f.HasEquity)

	f, err = ParseFiltersFromQuery(url.Values{"hasEquity": {"false"}})
	require.NoError(t, err)
	assert.False(t, f.HasEquity)
}

func TestParseFiltersFromQueryInvalid(t *testing.T) {
	for _, q := range []url.Values{
		{"minSalary": {"lots"}},
		{"hasEquity": {"maybe"}},
		{"companyHandle": {"c1"}},
	} {
		_, err := ParseFiltersFromQuery(q)
		require.Error(t, err, q.Encode())
		assert.True(t, errs.IsValidation(err))
	}
}

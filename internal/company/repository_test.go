package company_test

import (
	"context"
	"testing"

	"github.com/0x13a/jobly/internal/company"
	"github.com/0x13a/jobly/internal/database"
	"github.com/0x13a/jobly/internal/database/dbtest"
	"github.com/0x13a/jobly/internal/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *company.Repository {
	t.Helper()
	db := dbtest.Open(t)
	dbtest.Seed(t, db)
	return company.NewRepository(db, database.SQLite)
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func handles(cs []company.Company) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Handle)
	}
	return out
}

func TestCreate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	nc := company.Company{
		Handle:       "new",
		Name:         "New",
		Description:  "New Description",
		NumEmployees: intPtr(1),
		LogoURL:      strPtr("http://new.img"),
	}
	got, err := repo.Create(ctx, nc)
	require.NoError(t, err)
	assert.Equal(t, nc, got)

	found, err := repo.Get(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "New", found.Name)
	assert.Empty(t, found.Jobs)
}

func TestCreateDuplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, company.Company{Handle: "c1", Name: "Other", Description: "x"})
	require.Error(t, err)
	assert.True(t, errs.IsDuplicate(err))
	assert.Equal(t, "duplicate company: c1", err.Error())

	existing, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "C1", existing.Name)
}

func TestCreateDuplicateName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, company.Company{Handle: "fresh", Name: "C1", Description: "x"})
	require.Error(t, err)
	assert.True(t, errs.IsDuplicate(err))
	assert.Equal(t, "duplicate company name: C1", err.Error())

	_, err = repo.Get(ctx, "fresh")
	assert.True(t, errs.IsNotFound(err))
}

func TestFindAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		filters company.Filters
		want    []string
	}{
		{"no filter", company.Filters{}, []string{"c1", "c2", "c3"}},
		{"name case-insensitive", company.Filters{Name: "c1"}, []string{"c1"}},
		{"min employees", company.Filters{MinEmployees: intPtr(2)}, []string{"c2", "c3"}},
		{"max employees", company.Filters{MaxEmployees: intPtr(2)}, []string{"c1", "c2"}},
		{"min and max", company.Filters{MinEmployees: intPtr(2), MaxEmployees: intPtr(2)}, []string{"c2"}},
		{"all filters", company.Filters{Name: "C", MinEmployees: intPtr(1), MaxEmployees: intPtr(3)}, []string{"c1", "c2", "c3"}},
		{"no match", company.Filters{Name: "nope"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindAll(ctx, tt.filters)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, handles(got))
		})
	}
}

func TestFindAllMinGreaterThanMax(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.FindAll(context.Background(), company.Filters{MinEmployees: intPtr(3), MaxEmployees: intPtr(1)})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	// rejected before any query: a closed store would otherwise fail with a 500
	db := dbtest.Open(t)
	require.NoError(t, db.Close())
	_, err = company.NewRepository(db, database.SQLite).
		FindAll(context.Background(), company.Filters{MinEmployees: intPtr(3), MaxEmployees: intPtr(1)})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = company.NewRepository(db, database.SQLite).FindAll(context.Background(), company.Filters{})
	require.Error(t, err)
	assert.False(t, errs.IsValidation(err))
}

func TestGet(t *testing.T) {
	repo := newTestRepo(t)
	got, err := repo.Get(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "C1", got.Name)
	assert.Equal(t, "Desc1", got.Description)
	assert.Equal(t, 1, *got.NumEmployees)
	assert.Equal(t, "http://c1.img", *got.LogoURL)
	require.Len(t, got.Jobs, 2)
	assert.Equal(t, "Botanist", got.Jobs[0].Title)
	assert.Equal(t, 100000, *got.Jobs[0].Salary)
	assert.True(t, got.Jobs[0].Equity.Decimal.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, "Cook", got.Jobs[1].Title)
}

func TestGetNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	got, err := repo.Update(ctx, "c1", database.Fields{
		{Name: "name", Value: "New"},
		{Name: "numEmployees", Value: 10},
		{Name: "logoUrl", Value: nil},
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", got.Handle)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "Desc1", got.Description)
	assert.Equal(t, 10, *got.NumEmployees)
	assert.Nil(t, got.LogoURL)
}

func TestUpdateErrors(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, "nope", database.Fields{{Name: "name", Value: "x"}})
	assert.True(t, errs.IsNotFound(err))

	_, err = repo.Update(ctx, "c1", database.Fields{})
	assert.True(t, errs.IsValidation(err))

	_, err = repo.Update(ctx, "c1", database.Fields{{Name: "handle", Value: "c9"}})
	assert.True(t, errs.IsValidation(err))

	_, err = repo.Update(ctx, "c1", database.Fields{{Name: "name", Value: "C2"}})
	assert.True(t, errs.IsDuplicate(err))
}

func TestRemove(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Remove(ctx, "c1"))
	_, err := repo.Get(ctx, "c1")
	assert.True(t, errs.IsNotFound(err))

	err = repo.Remove(ctx, "c1")
	assert.True(t, errs.IsNotFound(err))
}

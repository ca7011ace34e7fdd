package company

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/0x13a/jobly/internal/database"
	"github.com/0x13a/jobly/internal/errs"
	"github.com/pkg/errors"
)

const companyColumns = `handle, name, description, num_employees, logo_url`

type Repository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewRepository(db *sql.DB, dialect database.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCompany(row scanner) (Company, error) {
	var c Company
	var numEmployees sql.NullInt64
	var logoURL sql.NullString
	if err := row.Scan(&c.Handle, &c.Name, &c.Description, &numEmployees, &logoURL); err != nil {
		return c, err
	}
	if numEmployees.Valid {
		n := int(numEmployees.Int64)
		c.NumEmployees = &n
	}
	if logoURL.Valid {
		c.LogoURL = &logoURL.String
	}
	return c, nil
}

// Create inserts c. A handle or name already in use yields a DuplicateError
// and leaves the existing row untouched.
func (r *Repository) Create(ctx context.Context, c Company) (Company, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns,
		c.Handle, c.Name, c.Description, c.NumEmployees, c.LogoURL)
	created, err := scanCompany(row)
	if database.IsUniqueViolationOn(err, "companies", "name") {
		return Company{}, errs.Duplicate("duplicate company name: %s", c.Name)
	}
	if database.IsUniqueViolation(err) {
		return Company{}, errs.Duplicate("duplicate company: %s", c.Handle)
	}
	if err != nil {
		return Company{}, errors.Wrap(err, "unable to create company")
	}
	return created, nil
}

// FindAll returns companies matching f ordered by name.
func (r *Repository) FindAll(ctx context.Context, f Filters) ([]Company, error) {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return nil, &errs.ValidationError{
			Message: "minEmployees cannot be greater than maxEmployees",
			Fields:  []errs.FieldError{{Field: "minEmployees", Error: "greater than maxEmployees"}},
		}
	}
	var where database.Where
	if f.Name != "" {
		where.Add(fmt.Sprintf("name %s $%%d", r.dialect.ILike), database.Contains(f.Name))
	}
	if f.MinEmployees != nil {
		where.Add("num_employees >= $%d", *f.MinEmployees)
	}
	if f.MaxEmployees != nil {
		where.Add("num_employees <= $%d", *f.MaxEmployees)
	}
	stmt := `SELECT ` + companyColumns + ` FROM companies` + where.Clause() + ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, stmt, where.Args()...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to query companies")
	}
	defer rows.Close()
	res := make([]Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, errors.Wrap(err, "unable to scan company")
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to query companies")
	}
	return res, nil
}

// Get returns the company with its jobs ordered by id.
func (r *Repository) Get(ctx context.Context, handle string) (Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle)
	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return Company{}, errs.NotFound("no company: %s", handle)
	}
	if err != nil {
		return Company{}, errors.Wrapf(err, "unable to get company %s", handle)
	}
	c.Jobs, err = r.jobsFor(ctx, handle)
	if err != nil {
		return Company{}, err
	}
	return c, nil
}

func (r *Repository) jobsFor(ctx context.Context, handle string) ([]CompanyJob, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, salary, equity FROM jobs WHERE company_handle = $1 ORDER BY id`, handle)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to query jobs for %s", handle)
	}
	defer rows.Close()
	jobs := make([]CompanyJob, 0)
	for rows.Next() {
		var j CompanyJob
		var salary sql.NullInt64
		if err := rows.Scan(&j.ID, &j.Title, &salary, &j.Equity); err != nil {
			return nil, errors.Wrap(err, "unable to scan job")
		}
		if salary.Valid {
			s := int(salary.Int64)
			j.Salary = &s
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Update applies the partial update data to the company. The handle cannot
// be changed.
func (r *Repository) Update(ctx context.Context, handle string, data database.Fields) (Company, error) {
	if err := database.Columns(updatable).Check(data); err != nil {
		return Company{}, err
	}
	setCols, values, err := database.SQLForPartialUpdate(data, updatable)
	if err != nil {
		return Company{}, err
	}
	stmt := fmt.Sprintf(`UPDATE companies SET %s WHERE handle = $%d RETURNING %s`, setCols, len(values)+1, companyColumns)
	c, err := scanCompany(r.db.QueryRowContext(ctx, stmt, append(values, handle)...))
	if err == sql.ErrNoRows {
		return Company{}, errs.NotFound("no company: %s", handle)
	}
	if database.IsUniqueViolation(err) {
		return Company{}, errs.Duplicate("duplicate company name")
	}
	if err != nil {
		return Company{}, errors.Wrapf(err, "unable to update company %s", handle)
	}
	return c, nil
}

// Remove deletes the company and, through the foreign key, its jobs.
func (r *Repository) Remove(ctx context.Context, handle string) error {
	var deleted string
	err := r.db.QueryRowContext(ctx, `DELETE FROM companies WHERE handle = $1 RETURNING handle`, handle).Scan(&deleted)
	if err == sql.ErrNoRows {
		return errs.NotFound("no company: %s", handle)
	}
	if err != nil {
		return errors.Wrapf(err, "unable to delete company %s", handle)
	}
	return nil
}

package job

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/0x13a/jobly/internal/database"
	"github.com/0x13a/jobly/internal/errs"
	"github.com/pkg/errors"
)

const jobColumns = `id, title, salary, equity, company_handle`

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

func scanJob(row scanner) (Job, error) {
	var j Job
	var salary sql.NullInt64
	if err := row.Scan(&j.ID, &j.Title, &salary, &j.Equity, &j.CompanyHandle); err != nil {
		return j, err
	}
	if salary.Valid {
		s := int(salary.Int64)
		j.Salary = &s
	}
	return j, nil
}

// Create inserts j and returns it with its generated id. An unknown company
// is rejected by the store's foreign key.
func (r *Repository) Create(ctx context.Context, j Job) (Job, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING `+jobColumns,
		j.Title, j.Salary, j.Equity, j.CompanyHandle)
	created, err := scanJob(row)
	if err != nil {
		return Job{}, errors.Wrap(err, "unable to create job")
	}
	return created, nil
}

// FindAll returns jobs matching f ordered by title.
func (r *Repository) FindAll(ctx context.Context, f Filters) ([]Job, error) {
	var where database.Where
	if f.Title != "" {
		where.Add(fmt.Sprintf("title %s $%%d", r.dialect.ILike), database.Contains(f.Title))
	}
	if f.MinSalary != nil {
		where.Add("salary >= $%d", *f.MinSalary)
	}
	if f.HasEquity {
		where.AddLiteral("equity > 0")
	}
	stmt := `SELECT ` + jobColumns + ` FROM jobs` + where.Clause() + ` ORDER BY title`
	rows, err := r.db.QueryContext(ctx, stmt, where.Args()...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to query jobs")
	}
	defer rows.Close()
	res := make([]Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, errors.Wrap(err, "unable to scan job")
		}
		res = append(res, j)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to query jobs")
	}
	return res, nil
}

func (r *Repository) Get(ctx context.Context, id int) (Job, error) {
	j, err := scanJob(r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return Job{}, errs.NotFound("no job: %d", id)
	}
	if err != nil {
		return Job{}, errors.Wrapf(err, "unable to get job %d", id)
	}
	return j, nil
}

// Update applies data to the job. Keys outside title, salary and equity are
// rejected before any query runs.
func (r *Repository) Update(ctx context.Context, id int, data database.Fields) (Job, error) {
	if err := database.Columns(updatable).Check(data); err != nil {
		return Job{}, err
	}
	setCols, values, err := database.SQLForPartialUpdate(data, updatable)
	if err != nil {
		return Job{}, err
	}
	stmt := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`, setCols, len(values)+1, jobColumns)
	j, err := scanJob(r.db.QueryRowContext(ctx, stmt, append(values, id)...))
	if err == sql.ErrNoRows {
		return Job{}, errs.NotFound("no job: %d", id)
	}
	if err != nil {
		return Job{}, errors.Wrapf(err, "unable to update job %d", id)
	}
	return j, nil
}

func (r *Repository) Remove(ctx context.Context, id int) error {
	var deleted int
	err := r.db.QueryRowContext(ctx, `DELETE FROM jobs WHERE id = $1 RETURNING id`, id).Scan(&deleted)
	if err == sql.ErrNoRows {
		return errs.NotFound("no job: %d", id)
	}
	if err != nil {
		return errors.Wrapf(err, "unable to delete job %d", id)
	}
	return nil
}

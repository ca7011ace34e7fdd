package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/0x13a/jobly/internal/database"
	"github.com/0x13a/jobly/internal/errs"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `username, first_name, last_name, email, is_admin`

type Repository struct {
	db         *sql.DB
	workFactor int
}

// NewRepository returns a repository hashing passwords with the given bcrypt
// cost.
func NewRepository(db *sql.DB, workFactor int) *Repository {
	return &Repository{db: db, workFactor: workFactor}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (User, error) {
	var u User
	err := row.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	return u, err
}

func (r *Repository) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), r.workFactor)
	if err != nil {
		return "", errors.Wrap(err, "unable to hash password")
	}
	return string(b), nil
}

// Register stores u with a hashed password.
func (r *Repository) Register(ctx context.Context, u NewUser) (User, error) {
	hashed, err := r.hash(u.Password)
	if err != nil {
		return User{}, err
	}
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		u.Username, hashed, u.FirstName, u.LastName, u.Email, u.IsAdmin)
	created, err := scanUser(row)
	if database.IsUniqueViolation(err) {
		return User{}, errs.Duplicate("duplicate username: %s", u.Username)
	}
	if err != nil {
		return User{}, errors.Wrap(err, "unable to register user")
	}
	return created, nil
}

// Authenticate returns the user when password matches. Unknown users and bad
// passwords give the same error.
func (r *Repository) Authenticate(ctx context.Context, username, password string) (User, error) {
	var hashed string
	var u User
	err := r.db.QueryRowContext(ctx, `SELECT `+userColumns+`, password FROM users WHERE username = $1`, username).
		Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin, &hashed)
	if err == sql.ErrNoRows {
		return User{}, errs.Unauthorized("invalid username/password")
	}
	if err != nil {
		return User{}, errors.Wrap(err, "unable to authenticate user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return User{}, errs.Unauthorized("invalid username/password")
	}
	return u, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, errors.Wrap(err, "unable to query users")
	}
	defer rows.Close()
	res := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "unable to scan user")
		}
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to query users")
	}
	return res, nil
}

// Get returns the user with the ids of the jobs they applied to.
func (r *Repository) Get(ctx context.Context, username string) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err == sql.ErrNoRows {
		return User{}, errs.NotFound("no user: %s", username)
	}
	if err != nil {
		return User{}, errors.Wrapf(err, "unable to get user %s", username)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id`, username)
	if err != nil {
		return User{}, errors.Wrapf(err, "unable to query applications for %s", username)
	}
	defer rows.Close()
	u.Applications = make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return User{}, errors.Wrap(err, "unable to scan application")
		}
		u.Applications = append(u.Applications, id)
	}
	return u, rows.Err()
}

// Update applies data to the user. A password in data is stored hashed.
func (r *Repository) Update(ctx context.Context, username string, data database.Fields) (User, error) {
	if err := database.Columns(updatable).Check(data); err != nil {
		return User{}, err
	}
	if v, ok := data.Get("password"); ok {
		password, ok := v.(string)
		if !ok || password == "" {
			return User{}, &errs.ValidationError{
				Message: "password must be a non-empty string",
				Fields:  []errs.FieldError{{Field: "password", Error: "invalid"}},
			}
		}
		hashed, err := r.hash(password)
		if err != nil {
			return User{}, err
		}
		data = data.Set("password", hashed)
	}
	setCols, values, err := database.SQLForPartialUpdate(data, updatable)
	if err != nil {
		return User{}, err
	}
	stmt := fmt.Sprintf(`UPDATE users SET %s WHERE username = $%d RETURNING %s`, setCols, len(values)+1, userColumns)
	u, err := scanUser(r.db.QueryRowContext(ctx, stmt, append(values, username)...))
	if err == sql.ErrNoRows {
		return User{}, errs.NotFound("no user: %s", username)
	}
	if err != nil {
		return User{}, errors.Wrapf(err, "unable to update user %s", username)
	}
	return u, nil
}

func (r *Repository) Remove(ctx context.Context, username string) error {
	var deleted string
	err := r.db.QueryRowContext(ctx, `DELETE FROM users WHERE username = $1 RETURNING username`, username).Scan(&deleted)
	if err == sql.ErrNoRows {
		return errs.NotFound("no user: %s", username)
	}
	if err != nil {
		return errors.Wrapf(err, "unable to delete user %s", username)
	}
	return nil
}

// ApplyToJob records that username applied to jobID.
func (r *Repository) ApplyToJob(ctx context.Context, username string, jobID int) error {
	var found int
	err := r.db.QueryRowContext(ctx, `SELECT id FROM jobs WHERE id = $1`, jobID).Scan(&found)
	if err == sql.ErrNoRows {
		return errs.NotFound("no job: %d", jobID)
	}
	if err != nil {
		return errors.Wrapf(err, "unable to get job %d", jobID)
	}
	var name string
	err = r.db.QueryRowContext(ctx, `SELECT username FROM users WHERE username = $1`, username).Scan(&name)
	if err == sql.ErrNoRows {
		return errs.NotFound("no user: %s", username)
	}
	if err != nil {
		return errors.Wrapf(err, "unable to get user %s", username)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO applications (username, job_id) VALUES ($1, $2)`, username, jobID)
	if database.IsUniqueViolation(err) {
		return errs.Duplicate("%s already applied to job %d", username, jobID)
	}
	if err != nil {
		return errors.Wrap(err, "unable to apply to job")
	}
	return nil
}

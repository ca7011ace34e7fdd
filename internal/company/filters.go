package company

import (
	"net/url"
	"strconv"

	"github.com/0x13a/jobly/internal/errs"
)

// ParseFiltersFromQuery reads name, minEmployees and maxEmployees. Any other
// parameter is rejected.
func ParseFiltersFromQuery(query url.Values) (Filters, error) {
	var f Filters
	var fieldErrs []errs.FieldError
	for key := range query {
		switch key {
		case "name":
			f.Name = query.Get(key)
		case "minEmployees", "maxEmployees":
			n, err := strconv.Atoi(query.Get(key))
			if err != nil || n < 0 {
				fieldErrs = append(fieldErrs, errs.FieldError{Field: key, Error: "must be a non-negative integer"})
				continue
			}
			if key == "minEmployees" {
				f.MinEmployees = &n
			} else {
				f.MaxEmployees = &n
			}
		default:
			fieldErrs = append(fieldErrs, errs.FieldError{Field: key, Error: "unknown filter"})
		}
	}
	if len(fieldErrs) > 0 {
		return Filters{}, &errs.ValidationError{Message: "invalid company filters", Fields: fieldErrs}
	}
	return f, nil
}

package job

import (
	"net/url"
	"strconv"

	"github.com/0x13a/jobly/internal/errs"
)

// ParseFiltersFromQuery reads title, minSalary and hasEquity. Any other
// parameter is rejected.
func ParseFiltersFromQuery(query url.Values) (Filters, error) {
	var f Filters
	var fieldErrs []errs.FieldError
	for key := range query {
		value := query.Get(key)
		switch key {
		case "title":
			f.Title = value
		case "minSalary":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				fieldErrs = append(fieldErrs, errs.FieldError{Field: key, Error: "must be a non-negative integer"})
				continue
			}
			f.MinSalary = &n
		case "hasEquity":
			b, err := strconv.ParseBool(value)
			if err != nil {
				fieldErrs = append(fieldErrs, errs.FieldError{Field: key, Error: "must be a boolean"})
				continue
			}
			f.HasEquity = b
		default:
			fieldErrs = append(fieldErrs, errs.FieldError{Field: key, Error: "unknown filter"})
		}
	}
	if len(fieldErrs) > 0 {
		return Filters{}, &errs.ValidationError{Message: "invalid job filters", Fields: fieldErrs}
	}
	return f, nil
}

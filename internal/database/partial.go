package database

import (
	"fmt"
	"strings"

	"github.com/0x13a/jobly/internal/errs"
)

// SQLForPartialUpdate builds the SET part of an UPDATE from data.
//
// Each field becomes "<column>"=$N where N is its 1-based position in data
// and column is jsToSQL[name] when present, the name itself otherwise.
// values holds the field values in the same order, so a statement that adds a
// trailing key parameter must number it len(values)+1.
//
//	SQLForPartialUpdate(Fields{{"firstName", "Aliya"}, {"age", 32}}, map[string]string{"firstName": "first_name"})
//	// `"first_name"=$1, "age"=$2`, ["Aliya", 32]
//
// Keys are not checked against any schema here; see Columns.Check.
func SQLForPartialUpdate(data Fields, jsToSQL map[string]string) (setCols string, values []interface{}, err error) {
	if len(data) == 0 {
		return "", nil, errs.Validation("no data supplied for update")
	}
	cols := make([]string, 0, len(data))
	values = make([]interface{}, 0, len(data))
	for idx, field := range data {
		col, ok := jsToSQL[field.Name]
		if !ok {
			col = field.Name
		}
		cols = append(cols, fmt.Sprintf(`"%s"=$%d`, col, idx+1))
		values = append(values, field.Value)
	}
	return strings.Join(cols, ", "), values, nil
}

// Columns maps every mutable logical field of an entity to its column.
type Columns map[string]string

// Check rejects fields that are not in the allow-list.
func (c Columns) Check(data Fields) error {
	for _, field := range data {
		if _, ok := c[field.Name]; !ok {
			return &errs.ValidationError{
				Message: fmt.Sprintf("field %q cannot be updated", field.Name),
				Fields:  []errs.FieldError{{Field: field.Name, Error: "not updatable"}},
			}
		}
	}
	return nil
}

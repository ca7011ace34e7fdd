package database

import (
	"fmt"
	"strings"
)

// Where collects filter predicates and the values bound to them.
// Placeholders are numbered by the position of their value in Args.
type Where struct {
	conds []string
	args  []interface{}
}

// Add appends value and a predicate whose single %d verb becomes the value's
// placeholder number, e.g. Add("salary >= $%d", 1000).
func (w *Where) Add(predicate string, value interface{}) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf(predicate, len(w.args)))
}

// AddLiteral appends a predicate that binds no value.
func (w *Where) AddLiteral(predicate string) {
	w.conds = append(w.conds, predicate)
}

func (w *Where) Clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *Where) Args() []interface{} {
	return w.args
}

// Contains wraps s for a substring pattern match.
func Contains(s string) string {
	return "%" + s + "%"
}

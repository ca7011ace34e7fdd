package company

import (
	"github.com/shopspring/decimal"
)

type Company struct {
	Handle       string       `json:"handle"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	NumEmployees *int         `json:"numEmployees"`
	LogoURL      *string      `json:"logoUrl"`
	Jobs         []CompanyJob `json:"jobs,omitempty"`
}

// CompanyJob is the job summary attached to a single company lookup.
type CompanyJob struct {
	ID     int                 `json:"id"`
	Title  string              `json:"title"`
	Salary *int                `json:"salary"`
	Equity decimal.NullDecimal `json:"equity"`
}

type Filters struct {
	Name         string
	MinEmployees *int
	MaxEmployees *int
}

// updatable maps the logical fields a PATCH may carry to their columns.
var updatable = map[string]string{
	"name":         "name",
	"description":  "description",
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

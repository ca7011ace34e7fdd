package job

import (
	"github.com/shopspring/decimal"
)

type Job struct {
	ID            int                 `json:"id"`
	Title         string              `json:"title"`
	Salary        *int                `json:"salary"`
	Equity        decimal.NullDecimal `json:"equity"`
	CompanyHandle string              `json:"companyHandle"`
}

type Filters struct {
	Title     string
	MinSalary *int
	// HasEquity keeps only jobs with a positive equity. False does not filter.
	HasEquity bool
}

// Only these fields may change after creation; id and companyHandle are fixed.
var updatable = map[string]string{
	"title":  "title",
	"salary": "salary",
	"equity": "equity",
}

package handler

import (
	"net/http"

	"github.com/0x13a/jobly/internal/job"
	"github.com/0x13a/jobly/internal/server"
	"github.com/shopspring/decimal"
)

type jobNewRequest struct {
	Title         string              `json:"title" validate:"required"`
	Salary        *int                `json:"salary" validate:"omitempty,min=0"`
	Equity        decimal.NullDecimal `json:"equity"`
	CompanyHandle string              `json:"companyHandle" validate:"required,max=25"`
}

// id and companyHandle are not accepted once a job exists.
type jobUpdateRequest struct {
	Title  *string             `json:"title" validate:"omitempty,min=1"`
	Salary *int                `json:"salary" validate:"omitempty,min=0"`
	Equity decimal.NullDecimal `json:"equity"`
}

func CreateJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &jobNewRequest{}
		if err := decodeStrictRequest(w, r, req); err != nil {
			svr.Error(w, r, err)
			return
		}
		if err := checkEquity(req.Equity); err != nil {
			svr.Error(w, r, err)
			return
		}
		j, err := jobRepo.Create(r.Context(), job.Job{
			Title:         req.Title,
			Salary:        req.Salary,
			Equity:        req.Equity,
			CompanyHandle: req.CompanyHandle,
		})
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		mutated(svr)
		svr.JSON(w, http.StatusCreated, map[string]interface{}{"job": j})
	}
}

func JobsHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cachedList(svr, w, r, func() (interface{}, error) {
			filters, err := job.ParseFiltersFromQuery(r.URL.Query())
			if err != nil {
				return nil, err
			}
			jobs, err := jobRepo.FindAll(r.Context(), filters)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"jobs": jobs}, nil
		})
	}
}

func JobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		j, err := jobRepo.Get(r.Context(), id)
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"job": j})
	}
}

func UpdateJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		req := &jobUpdateRequest{}
		data, err := decodePatch(w, r, req, "title")
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		if err := checkEquity(req.Equity); err != nil {
			svr.Error(w, r, err)
			return
		}
		j, err := jobRepo.Update(r.Context(), id, data)
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		mutated(svr)
		svr.JSON(w, http.StatusOK, map[string]interface{}{"job": j})
	}
}

func DeleteJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		if err := jobRepo.Remove(r.Context(), id); err != nil {
			svr.Error(w, r, err)
			return
		}
		mutated(svr)
		svr.JSON(w, http.StatusOK, map[string]interface{}{"deleted": id})
	}
}

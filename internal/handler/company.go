package handler

import (
	"net/http"

	"github.com/0x13a/jobly/internal/company"
	"github.com/0x13a/jobly/internal/server"
	"github.com/gorilla/mux"
)

type companyNewRequest struct {
	Handle       string  `json:"handle" validate:"required,max=25,slug"`
	Name         string  `json:"name" validate:"required,max=100"`
	Description  string  `json:"description" validate:"required"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

type companyUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

func CreateCompanyHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &companyNewRequest{}
		if err := decodeStrictRequest(w, r, req); err != nil {
			svr.Error(w, r, err)
			return
		}
		c, err := companyRepo.Create(r.Context(), company.Company{
			Handle:       req.Handle,
			Name:         req.Name,
			Description:  req.Description,
			NumEmployees: req.NumEmployees,
			LogoURL:      req.LogoURL,
		})
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		mutated(svr)
		svr.JSON(w, http.StatusCreated, map[string]interface{}{"company": c})
	}
}

func CompaniesHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cachedList(svr, w, r, func() (interface{}, error) {
			filters, err := company.ParseFiltersFromQuery(r.URL.Query())
			if err != nil {
				return nil, err
			}
			companies, err := companyRepo.FindAll(r.Context(), filters)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"companies": companies}, nil
		})
	}
}

func CompanyHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := companyRepo.Get(r.Context(), mux.Vars(r)["handle"])
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"company": c})
	}
}

func UpdateCompanyHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := decodePatch(w, r, &companyUpdateRequest{}, "name", "description")
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		c, err := companyRepo.Update(r.Context(), mux.Vars(r)["handle"], data)
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		mutated(svr)
		svr.JSON(w, http.StatusOK, map[string]interface{}{"company": c})
	}
}

func DeleteCompanyHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := mux.Vars(r)["handle"]
		if err := companyRepo.Remove(r.Context(), handle); err != nil {
			svr.Error(w, r, err)
			return
		}
		mutated(svr)
		svr.JSON(w, http.StatusOK, map[string]interface{}{"deleted": handle})
	}
}

package handler

import (
	"net/http"

	"github.com/0x13a/jobly/internal/company"
	"github.com/0x13a/jobly/internal/job"
	"github.com/0x13a/jobly/internal/middleware"
	"github.com/0x13a/jobly/internal/server"
	"github.com/0x13a/jobly/internal/user"
)

// RegisterRoutes mounts every API route on svr.
func RegisterRoutes(svr server.Server, companyRepo *company.Repository, jobRepo *job.Repository, userRepo *user.Repository) {
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RateLimitMiddleware(svr.AuthLimiter(), h)
	}

	svr.RegisterRoute("/status", StatusHandler(svr), []string{"GET"})

	//
	// auth routes
	//

	svr.RegisterRoute("/auth/token", limited(GetTokenHandler(svr, userRepo)), []string{"POST"})
	svr.RegisterRoute("/auth/register", limited(RegisterHandler(svr, userRepo)), []string{"POST"})

	//
	// companies, writes are admin only
	//

	svr.RegisterRoute("/companies", middleware.EnsureAdmin(CreateCompanyHandler(svr, companyRepo)), []string{"POST"})
	svr.RegisterRoute("/companies", CompaniesHandler(svr, companyRepo), []string{"GET"})
	svr.RegisterRoute("/companies/{handle}", CompanyHandler(svr, companyRepo), []string{"GET"})
	svr.RegisterRoute("/companies/{handle}", middleware.EnsureAdmin(UpdateCompanyHandler(svr, companyRepo)), []string{"PATCH"})
	svr.RegisterRoute("/companies/{handle}", middleware.EnsureAdmin(DeleteCompanyHandler(svr, companyRepo)), []string{"DELETE"})

	//
	// jobs, writes are admin only
	//

	svr.RegisterRoute("/jobs", middleware.EnsureAdmin(CreateJobHandler(svr, jobRepo)), []string{"POST"})
	svr.RegisterRoute("/jobs", JobsHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs/{id}", JobHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs/{id}", middleware.EnsureAdmin(UpdateJobHandler(svr, jobRepo)), []string{"PATCH"})
	svr.RegisterRoute("/jobs/{id}", middleware.EnsureAdmin(DeleteJobHandler(svr, jobRepo)), []string{"DELETE"})

	//
	// users, open to the user themselves or an admin
	//

	svr.RegisterRoute("/users", middleware.EnsureAdmin(CreateUserHandler(svr, userRepo)), []string{"POST"})
	svr.RegisterRoute("/users", middleware.EnsureAdmin(UsersHandler(svr, userRepo)), []string{"GET"})
	svr.RegisterRoute("/users/{username}", middleware.EnsureCorrectUserOrAdmin(UserHandler(svr, userRepo)), []string{"GET"})
	svr.RegisterRoute("/users/{username}", middleware.EnsureCorrectUserOrAdmin(UpdateUserHandler(svr, userRepo)), []string{"PATCH"})
	svr.RegisterRoute("/users/{username}", middleware.EnsureCorrectUserOrAdmin(DeleteUserHandler(svr, userRepo)), []string{"DELETE"})
	svr.RegisterRoute("/users/{username}/jobs/{id}", middleware.EnsureCorrectUserOrAdmin(ApplyToJobHandler(svr, userRepo)), []string{"POST"})
}

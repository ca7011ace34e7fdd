package handler

import (
	"net/http"

	"github.com/0x13a/jobly/internal/middleware"
	"github.com/0x13a/jobly/internal/server"
	"github.com/0x13a/jobly/internal/user"
)

type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=25"`
	Password  string `json:"password" validate:"required,min=5,max=20"`
	FirstName string `json:"firstName" validate:"required,min=1,max=30"`
	LastName  string `json:"lastName" validate:"required,min=1,max=30"`
	Email     string `json:"email" validate:"required,email,min=6,max=60"`
}

func GetTokenHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &tokenRequest{}
		if err := decodeStrictRequest(w, r, req); err != nil {
			svr.Error(w, r, err)
			return
		}
		u, err := userRepo.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		tk, err := middleware.NewToken(svr.GetJWTSigningKey(), u.Username, u.IsAdmin)
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"token": tk})
	}
}

// RegisterHandler signs up a non-admin user and logs them in.
func RegisterHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &registerRequest{}
		if err := decodeStrictRequest(w, r, req); err != nil {
			svr.Error(w, r, err)
			return
		}
		u, err := userRepo.Register(r.Context(), user.NewUser{
			Username:  req.Username,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
		})
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		tk, err := middleware.NewToken(svr.GetJWTSigningKey(), u.Username, u.IsAdmin)
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		svr.JSON(w, http.StatusCreated, map[string]interface{}{"token": tk})
	}
}

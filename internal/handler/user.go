package handler

import (
	"net/http"

	"github.com/0x13a/jobly/internal/errs"
	"github.com/0x13a/jobly/internal/middleware"
	"github.com/0x13a/jobly/internal/server"
	"github.com/0x13a/jobly/internal/user"
	"github.com/gorilla/mux"
)

type userNewRequest struct {
	registerRequest
	IsAdmin bool `json:"isAdmin"`
}

type userUpdateRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=30"`
	Password  *string `json:"password" validate:"omitempty,min=5,max=20"`
	Email     *string `json:"email" validate:"omitempty,email,min=6,max=60"`
	IsAdmin   *bool   `json:"isAdmin"`
}

// CreateUserHandler lets an admin add a user, admins included.
func CreateUserHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &userNewRequest{}
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
			IsAdmin:   req.IsAdmin,
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
		svr.JSON(w, http.StatusCreated, map[string]interface{}{"user": u, "token": tk})
	}
}

func UsersHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := userRepo.FindAll(r.Context())
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"users": users})
	}
}

func UserHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := userRepo.Get(r.Context(), mux.Vars(r)["username"])
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"user": u})
	}
}

func UpdateUserHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &userUpdateRequest{}
		data, err := decodePatch(w, r, req, "firstName", "lastName", "password", "email", "isAdmin")
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		if claims, _ := middleware.GetUserFromContext(r.Context()); req.IsAdmin != nil && (claims == nil || !claims.IsAdmin) {
			svr.Error(w, r, errs.Unauthorized("only admins can change isAdmin"))
			return
		}
		u, err := userRepo.Update(r.Context(), mux.Vars(r)["username"], data)
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"user": u})
	}
}

func DeleteUserHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := mux.Vars(r)["username"]
		if err := userRepo.Remove(r.Context(), username); err != nil {
			svr.Error(w, r, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"deleted": username})
	}
}

func ApplyToJobHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			svr.Error(w, r, err)
			return
		}
		if err := userRepo.ApplyToJob(r.Context(), mux.Vars(r)["username"], id); err != nil {
			svr.Error(w, r, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"applied": id})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

type UserJWT struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// NewToken signs an HS256 token carrying username and isAdmin.
func NewToken(jwtKey []byte, username string, isAdmin bool) (string, error) {
	claims := UserJWT{
		Username: username,
		IsAdmin:  isAdmin,
		StandardClaims: jwt.StandardClaims{
			IssuedAt: time.Now().Unix(),
		},
	}
	tk, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtKey)
	if err != nil {
		return "", errors.Wrap(err, "unable to sign token")
	}
	return tk, nil
}

// ParseToken verifies tk and returns its claims.
func ParseToken(jwtKey []byte, tk string) (*UserJWT, error) {
	token, err := jwt.ParseWithClaims(tk, &UserJWT{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	claims, ok := token.Claims.(*UserJWT)
	if !ok || claims.Username == "" {
		return nil, errors.New("could not convert jwt claims to UserJWT")
	}
	return claims, nil
}

// AuthenticateJWT attaches the claims of a valid bearer token to the request.
// A missing or invalid token leaves the request anonymous.
func AuthenticateJWT(jwtKey []byte, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tk := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || tk == header {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := ParseToken(jwtKey, tk)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, claims)))
	})
}

func GetUserFromContext(ctx context.Context) (*UserJWT, bool) {
	claims, ok := ctx.Value(userKey).(*UserJWT)
	return claims, ok
}

func EnsureLoggedIn(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

func EnsureAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetUserFromContext(r.Context())
		if !ok || !claims.IsAdmin {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

// EnsureCorrectUserOrAdmin lets through admins and the user named by the
// {username} route variable.
func EnsureCorrectUserOrAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetUserFromContext(r.Context())
		if !ok || !(claims.IsAdmin || claims.Username == mux.Vars(r)["username"]) {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

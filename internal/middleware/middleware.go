package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	userKey
)

const RequestIDHeader = "X-Request-Id"

func HTTPSMiddleware(next http.Handler, env string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if env != "dev" && r.Header.Get("X-Forwarded-Proto") != "https" {
			target := "https://" + r.Host + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware keeps an incoming X-Request-Id or assigns a new ksuid.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = ksuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func LoggingMiddleware(next http.Handler, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		logger.Info().
			Str("request_id", RequestID(r.Context())).
			Str("method", r.Method).
			Stringer("url", r.URL).
			Str("x-forwarded-for", r.Header.Get("x-forwarded-for")).
			Int("status", m.Code).
			Int64("bytes", m.Written).
			Dur("duration", m.Duration).
			Msg("req")
	})
}

func HeadersMiddleware(next http.Handler, env string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("Referrer-Policy", "origin")
		if env != "dev" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

// writeError renders the same error envelope as server.Error for requests
// rejected before they reach a handler.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"status":  status,
		},
	})
}

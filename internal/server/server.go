package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/0x13a/jobly/internal/config"
	"github.com/0x13a/jobly/internal/errs"
	"github.com/0x13a/jobly/internal/middleware"
	"github.com/allegro/bigcache/v3"
	"github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg         config.Config
	Conn        *sql.DB
	router      *mux.Router
	logger      zerolog.Logger
	bigCache    *bigcache.BigCache
	authLimiter *middleware.ClientLimiter
}

func NewServer(
	cfg config.Config,
	conn *sql.DB,
	r *mux.Router,
	logger zerolog.Logger,
) Server {
	if cfg.SentryDSN != "" {
		raven.SetDSN(cfg.SentryDSN)
		raven.SetEnvironment(cfg.Env)
	}

	bigCache, err := bigcache.NewBigCache(bigcache.DefaultConfig(cfg.CacheTTL))
	svr := Server{
		cfg:         cfg,
		Conn:        conn,
		router:      r,
		logger:      logger,
		bigCache:    bigCache,
		authLimiter: middleware.NewClientLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, cfg.TrustProxy),
	}
	if err != nil {
		svr.Log(err, "unable to initialise big cache")
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		svr.Error(w, req, errs.NotFound("Not Found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		svr.JSON(w, http.StatusMethodNotAllowed, map[string]interface{}{
			"error": errorBody{Message: http.StatusText(http.StatusMethodNotAllowed), Status: http.StatusMethodNotAllowed},
		})
	})

	return svr
}

// NewLogger returns a console logger in dev and a JSON logger otherwise.
func NewLogger(env string) zerolog.Logger {
	if env == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func (s Server) RegisterRoute(path string, handler func(w http.ResponseWriter, r *http.Request), methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) GetJWTSigningKey() []byte {
	return []byte(s.cfg.JwtSigningKey)
}

func (s Server) AuthLimiter() *middleware.ClientLimiter {
	return s.authLimiter
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

type errorBody struct {
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
}

// Error renders err as {"error": {...}} with the status of its kind.
// Unclassified errors are logged and their message is not exposed.
func (s Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.Status(err)
	body := errorBody{Message: err.Error(), Status: status}
	var verr *errs.ValidationError
	if errors.As(err, &verr) {
		body.Errors = verr.Fields
	}
	if status == http.StatusInternalServerError {
		s.Log(err, fmt.Sprintf("%s %s [%s]", r.Method, r.URL.Path, middleware.RequestID(r.Context())))
		body.Message = http.StatusText(status)
	}
	s.JSON(w, status, map[string]interface{}{"error": body})
}

func (s Server) Log(err error, msg string) {
	if s.cfg.SentryDSN != "" {
		raven.CaptureErrorAndWait(err, map[string]string{"ctx": msg})
	}
	s.logger.Error().Err(err).Msg(msg)
}

// Handler is the router wrapped in the per-request middleware chain.
func (s Server) Handler() http.Handler {
	return middleware.RequestIDMiddleware(
		middleware.LoggingMiddleware(
			middleware.HeadersMiddleware(
				middleware.AuthenticateJWT(s.GetJWTSigningKey(), s.router),
				s.cfg.Env,
			),
			s.logger,
		),
	)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	if s.cfg.IsDev() {
		s.logger.Info().Msgf("local env http://localhost:%s", s.cfg.Port)
		addr = fmt.Sprintf("localhost:%s", s.cfg.Port)
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           middleware.HTTPSMiddleware(s.Handler(), s.cfg.Env),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func (s Server) CacheGet(key string) ([]byte, bool) {
	if s.bigCache == nil {
		return nil, false
	}
	out, err := s.bigCache.Get(key)
	if err != nil {
		return []byte{}, false
	}
	return out, true
}

func (s Server) CacheSet(key string, val []byte) error {
	if s.bigCache == nil {
		return nil
	}
	return s.bigCache.Set(key, val)
}

// CacheReset drops every cached response. Called after any mutation.
func (s Server) CacheReset() error {
	if s.bigCache == nil {
		return nil
	}
	return s.bigCache.Reset()
}

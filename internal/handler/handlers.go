package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/0x13a/jobly/internal/database"
	"github.com/0x13a/jobly/internal/errs"
	"github.com/0x13a/jobly/internal/server"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// a handle is already in its slug form: lowercase, dash separated
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && slug.Make(s) == s
	})
	return v
}

// readBody reads at most maxBodyBytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errs.Validation("unable to read request body")
	}
	return b, nil
}

// decodeStrict decodes b into dst rejecting unknown fields, then validates dst.
func decodeStrict(b []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errs.Validation("invalid request body: %s", strings.TrimPrefix(err.Error(), "json: "))
	}
	return validateStruct(dst)
}

func validateStruct(dst interface{}) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "unable to validate request")
	}
	out := &errs.ValidationError{Message: "invalid request body"}
	for _, fe := range verrs {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out.Fields = append(out.Fields, errs.FieldError{Field: fe.Field(), Error: msg})
	}
	return out
}

// decodeStrictRequest is decodeStrict over the request body.
func decodeStrictRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	b, err := readBody(w, r)
	if err != nil {
		return err
	}
	return decodeStrict(b, dst)
}

// decodePatch validates the body against typed, then returns it as ordered
// fields. Explicit nulls are rejected for the keys in notNull.
func decodePatch(w http.ResponseWriter, r *http.Request, typed interface{}, notNull ...string) (database.Fields, error) {
	b, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	if err := decodeStrict(b, typed); err != nil {
		return nil, err
	}
	var data database.Fields
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, errs.Validation("invalid request body: %s", err.Error())
	}
	for _, key := range notNull {
		if v, ok := data.Get(key); ok && v == nil {
			return nil, &errs.ValidationError{
				Message: "invalid request body",
				Fields:  []errs.FieldError{{Field: key, Error: "cannot be null"}},
			}
		}
	}
	return data, nil
}

func checkEquity(equity decimal.NullDecimal) error {
	if !equity.Valid {
		return nil
	}
	if equity.Decimal.IsNegative() || equity.Decimal.GreaterThan(decimal.NewFromInt(1)) {
		return &errs.ValidationError{
			Message: "invalid request body",
			Fields:  []errs.FieldError{{Field: "equity", Error: "must be between 0 and 1"}},
		}
	}
	return nil
}

func intVar(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, errs.Validation("%s must be an integer", name)
	}
	return n, nil
}

// cachedList serves a list response from the cache, keyed by request URI,
// computing and storing it with load on a miss.
func cachedList(svr server.Server, w http.ResponseWriter, r *http.Request, load func() (interface{}, error)) {
	key := r.URL.RequestURI()
	if b, ok := svr.CacheGet(key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
		return
	}
	res, err := load()
	if err != nil {
		svr.Error(w, r, err)
		return
	}
	b, err := json.Marshal(res)
	if err != nil {
		svr.Error(w, r, errors.Wrap(err, "unable to encode response"))
		return
	}
	if err := svr.CacheSet(key, b); err != nil {
		svr.Log(err, "unable to cache "+key)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// mutated drops cached lists after a successful company or job write.
func mutated(svr server.Server) {
	if err := svr.CacheReset(); err != nil {
		svr.Log(err, "unable to reset cache")
	}
}

func StatusHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svr.Conn.PingContext(r.Context()); err != nil {
			svr.Error(w, r, errors.Wrap(err, "database unreachable"))
			return
		}
		svr.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

package errs

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Validation("bad %s", "input"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("nope"), http.StatusUnauthorized},
		{"not found", NotFound("no company: %s", "c1"), http.StatusNotFound},
		{"duplicate", Duplicate("duplicate company: %s", "c1"), http.StatusConflict},
		{"wrapped not found", errors.Wrap(NotFound("no job"), "get job"), http.StatusNotFound},
		{"unclassified", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "no company: c1", NotFound("no company: %s", "c1").Error())
	assert.Equal(t, "duplicate company: c1", Duplicate("duplicate company: %s", "c1").Error())
	assert.True(t, IsValidation(errors.Wrap(Validation("x"), "ctx")))
	assert.False(t, IsDuplicate(NotFound("x")))
}

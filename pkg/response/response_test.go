package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessWithMeta(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, http.StatusOK, "Books retrieved", []string{"Dune"}, &Meta{
		Page: 2, Limit: 12, Total: 30, TotalPages: 3, HasPrev: true, HasNext: true,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"success": true,
		"message": "Books retrieved",
		"data": ["Dune"],
		"meta": {"page": 2, "limit": 12, "total": 30, "total_pages": 3, "has_prev": true, "has_next": true}
	}`, rec.Body.String())
}

func TestErrorWithCode(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Error(rec, http.StatusConflict, "Book already purchased", ErrorBody{Code: "already_purchased"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"success": false, "message": "Book already purchased", "error": {"code": "already_purchased"}}`, rec.Body.String())
}

func TestShortcutsFillDefaultMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		write   func(http.ResponseWriter, string)
		status  int
		message string
	}{
		{"unauthorized", Unauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", Forbidden, http.StatusForbidden, "Forbidden"},
		{"too many requests", TooManyRequests, http.StatusTooManyRequests, "Too many requests"},
		{"internal", InternalServerError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			tt.write(rec, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, `{"success": false, "message": "`+tt.message+`"}`, rec.Body.String())
		})
	}
}

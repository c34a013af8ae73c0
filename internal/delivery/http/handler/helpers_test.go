package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"librarylens/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_MapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		code int
	}{
		{usecase.ErrBookNotFound, http.StatusNotFound},
		{usecase.ErrAlreadyPurchased, http.StatusConflict},
		{usecase.ErrNotAStudent, http.StatusForbidden},
		{usecase.ErrBookUnavailable, http.StatusUnprocessableEntity},
		{usecase.ErrInvalidSection, http.StatusBadRequest},
		{usecase.ErrInvalidPrice, http.StatusBadRequest},
		{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", usecase.ErrDuplicateEmail), http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		writeError(rec, tt.err, "Failed")
		assert.Equal(t, tt.code, rec.Code, tt.err.Error())
	}
}

func TestWriteError_BodyCarriesCode(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, usecase.ErrSectionNotEmpty, "Failed to delete section")

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, usecase.ErrSectionNotEmpty.Message, body.Message)
	assert.Equal(t, "section_not_empty", body.Error.Code)

	rec = httptest.NewRecorder()
	writeError(rec, errors.New("disk full"), "Failed to delete section")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to delete section", body.Message)
}

func TestQueryInt(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?page=3&per_page=abc&section=-2", nil)
	assert.Equal(t, 3, queryInt(req, "page", 1))
	assert.Equal(t, 12, queryInt(req, "per_page", 12))
	assert.Equal(t, -2, queryInt(req, "section", 0))
	assert.Equal(t, 0, queryInt(req, "missing", 0))
}

package handler

import (
	"net/http"
	"strconv"

	"librarylens/internal/domain/entity"
	"librarylens/internal/usecase"
	"librarylens/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func statusForKind(kind usecase.ErrorKind) int {
	switch kind {
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindConflict:
		return http.StatusConflict
	case usecase.KindForbidden:
		return http.StatusForbidden
	case usecase.KindPreconditionFailed:
		return http.StatusUnprocessableEntity
	case usecase.KindInvalidReference, usecase.KindInvalidInput:
		return http.StatusBadRequest
	case usecase.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a domain error with its kind's status, anything else as
// an internal error with the fallback message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	if domainErr, ok := usecase.AsError(err); ok {
		response.Error(w, statusForKind(domainErr.Kind), domainErr.Message, response.ErrorBody{Code: domainErr.Code})
		return
	}

	logrus.Errorf("%s: %+v", fallback, err)
	response.InternalServerError(w, fallback)
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter. Missing or malformed
// values yield def.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func metaFromPagination(p entity.Pagination) *response.Meta {
	return &response.Meta{
		Page:       p.Page,
		Limit:      p.PerPage,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gaspigz/taskManagerClg/internal/api/shared"
	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
)

// principalOrUnauthorized returns the authenticated principal. When the
// request carries none it writes a 401 and reports false.
func principalOrUnauthorized(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("principal not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthenticated, "")
		return domain.Principal{}, false
	}
	return p, true
}

// pathIDOrBadRequest parses a positive integer path parameter, writing a 400
// on failure.
func pathIDOrBadRequest(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := shared.ParseIDParam(r, name)
	if err != nil {
		logger.FromContext(r.Context()).Debug("invalid path parameter",
			"param_name", name,
			"value", chi.URLParam(r, name))
		HandleAPIError(w, r, domain.NewValidationError(name, "must be a positive integer"), "")
		return 0, false
	}
	return id, true
}

// decodeAndValidate reads the JSON body into v and runs struct validation,
// writing a 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		msg := "Invalid request format"
		if errors.Is(err, shared.ErrEmptyBody) {
			msg = "Request body is required"
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msg, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, shared.FormatValidationError(err), err)
		return false
	}
	return true
}

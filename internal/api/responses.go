package api

import (
	"net/http"

	"github.com/gaspigz/taskManagerClg/internal/api/shared"
)

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	shared.RespondWithJSON(w, r, status, data)
}

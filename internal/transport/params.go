package transport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// URLParamID parses a numeric path parameter. A malformed id is answered
// with 404 since no resource can match it.
func URLParamID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	n, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || n == 0 {
		WriteJSONError(w, "Not found.", http.StatusNotFound)
		return 0, false
	}
	return uint(n), true
}

package httputil

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

var errTrailingData = errors.New("unexpected data after JSON body")

// PathInt64 parses a named path parameter registered through router.Handler.
func PathInt64(r *http.Request, name string) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	return strconv.ParseInt(params.ByName(name), 10, 64)
}

func PathString(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

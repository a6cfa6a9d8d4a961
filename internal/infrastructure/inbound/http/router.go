package delivery_http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/inbound/http/httputil"
)

const unmatchedRoute = "unmatched"

func NewRouter(routes []Route, gate *Gate, log ports.Logger, metrics ports.MetricsProvider) http.Handler {
	router := httprouter.New()
	for _, route := range routes {
		log.Debug("Registering route",
			slog.String("method", route.Method),
			slog.String("path", route.Path),
			slog.String("policy", route.Policy.String()))
		router.Handler(route.Method, route.Path, instrument(route.Path, gate.Guard(route), log, metrics))
	}

	router.NotFound = instrument(unmatchedRoute, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusNotFound, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
	}), log, metrics)
	router.MethodNotAllowed = instrument(unmatchedRoute, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
	}), log, metrics)
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		log.Error("Recovered from panic",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("panic", v),
			slog.String("request_id", RequestIDFromContext(r.Context())))
		httputil.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}

	return withRequestID(withSafetyHeaders(router))
}

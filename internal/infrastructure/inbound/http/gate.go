package delivery_http

import (
	"errors"
	"log/slog"
	"net/http"

	"blog-service/internal/domain/custom_errors"
	ports "blog-service/internal/domain/ports/output"
	auth_http "blog-service/internal/infrastructure/inbound/http/auth"
	"blog-service/internal/infrastructure/inbound/http/httputil"
)

// Gate applies a route's policy before its handler runs. Public routes are
// passed through untouched.
type Gate struct {
	strategy auth_http.Strategy
	log      ports.Logger
}

func NewGate(strategy auth_http.Strategy, log ports.Logger) *Gate {
	return &Gate{strategy: strategy, log: log}
}

func (g *Gate) Guard(route Route) http.Handler {
	if route.Policy == Public {
		return route.Handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := g.strategy.Authenticate(r)
		if err != nil {
			if !errors.Is(err, custom_errors.ErrUnauthenticated) {
				g.log.Error("Authentication failed unexpectedly",
					slog.String("route", route.Path),
					slog.String("error", err.Error()))
			}
			httputil.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		route.Handler.ServeHTTP(w, r.WithContext(auth_http.WithPrincipal(r.Context(), principal)))
	})
}

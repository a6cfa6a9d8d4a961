package delivery_http

import (
	"net/http"

	auth_http "blog-service/internal/infrastructure/inbound/http/auth"
	"blog-service/internal/infrastructure/inbound/http/httputil"
	post_http "blog-service/internal/infrastructure/inbound/http/post"
	user_http "blog-service/internal/infrastructure/inbound/http/user"
)

// Policy decides whether a route needs a verified token. The zero value
// is Protected, so a route must opt out explicitly.
type Policy int

const (
	Protected Policy = iota
	Public
)

func (p Policy) String() string {
	if p == Public {
		return "public"
	}
	return "protected"
}

type Route struct {
	Method  string
	Path    string
	Policy  Policy
	Handler http.Handler
}

// Routes is the full HTTP surface. Signup and the feed are public while
// filtered posts and drafts require a token.
func Routes(authAPI *auth_http.API, userAPI *user_http.API, postAPI *post_http.API) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/health", Policy: Public, Handler: http.HandlerFunc(healthHandler)},
		{Method: http.MethodPost, Path: "/auth/login", Policy: Public, Handler: authAPI.Login},
		{Method: http.MethodGet, Path: "/profile", Handler: authAPI.Profile},
		{Method: http.MethodGet, Path: "/post/:id", Handler: postAPI.GetPost},
		{Method: http.MethodGet, Path: "/feed", Policy: Public, Handler: postAPI.Feed},
		{Method: http.MethodGet, Path: "/filtered-posts/:searchString", Handler: postAPI.FilteredPosts},
		{Method: http.MethodPost, Path: "/post", Handler: postAPI.CreateDraft},
		{Method: http.MethodPost, Path: "/user", Policy: Public, Handler: userAPI.CreateUser},
		{Method: http.MethodPut, Path: "/publish/:id", Handler: postAPI.PublishPost},
		{Method: http.MethodDelete, Path: "/post/:id", Handler: postAPI.DeletePost},
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package delivery_http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	auth_service "blog-service/internal/application/service/auth"
	post_service "blog-service/internal/application/service/post"
	user_service "blog-service/internal/application/service/user"
	model "blog-service/internal/domain/models"
	post_repository "blog-service/internal/domain/ports/output/post"
	user_repository "blog-service/internal/domain/ports/output/user"
	delivery_http "blog-service/internal/infrastructure/inbound/http"
	auth_http "blog-service/internal/infrastructure/inbound/http/auth"
	post_http "blog-service/internal/infrastructure/inbound/http/post"
	user_http "blog-service/internal/infrastructure/inbound/http/user"
	"blog-service/internal/infrastructure/logger"
	"blog-service/internal/infrastructure/outbound/metrics/prometheus"
	post_memory "blog-service/internal/infrastructure/outbound/repository/post/memory"
	user_memory "blog-service/internal/infrastructure/outbound/repository/user/memory"
	token_jwt "blog-service/internal/infrastructure/outbound/token/jwt"
)

type countingUsers struct {
	user_repository.Repository
	calls *atomic.Int64
}

func (c countingUsers) Create(ctx context.Context, user *model.User) (*model.User, error) {
	c.calls.Add(1)
	return c.Repository.Create(ctx, user)
}

func (c countingUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	c.calls.Add(1)
	return c.Repository.GetByEmail(ctx, email)
}

type countingPosts struct {
	post_repository.Repository
	calls *atomic.Int64
}

func (c countingPosts) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	c.calls.Add(1)
	return c.Repository.Create(ctx, post)
}

func (c countingPosts) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	c.calls.Add(1)
	return c.Repository.GetByID(ctx, id)
}

func (c countingPosts) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error) {
	c.calls.Add(1)
	return c.Repository.List(ctx, filters)
}

func (c countingPosts) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	c.calls.Add(1)
	return c.Repository.Update(ctx, id, update)
}

func (c countingPosts) Delete(ctx context.Context, id int64) (*model.Post, error) {
	c.calls.Add(1)
	return c.Repository.Delete(ctx, id)
}

type testApp struct {
	handler     http.Handler
	storeCalls  *atomic.Int64
	tokens      *token_jwt.Manager
	userService *user_service.UserService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := logger.New("test")
	metrics := prometheus.NewPrometheusMetricsProvider()
	validate := validator.New()
	calls := &atomic.Int64{}

	users := countingUsers{Repository: user_memory.NewUserRepository(log), calls: calls}
	posts := countingPosts{Repository: post_memory.NewPostRepository(log), calls: calls}

	tokens := token_jwt.NewManager("test-secret", time.Hour, "blog-service")
	userSvc := user_service.NewUserService(users, log, metrics, bcrypt.MinCost)
	postSvc := post_service.NewPostService(posts, users, log, metrics)
	authSvc := auth_service.NewAuthService(users, log)

	password := auth_http.NewPasswordStrategy(authSvc, log, metrics)
	gate := delivery_http.NewGate(auth_http.NewTokenStrategy(tokens, log, metrics), log)
	routes := delivery_http.Routes(
		auth_http.NewAPI(password, tokens, log),
		user_http.NewAPI(userSvc, validate, log),
		post_http.NewAPI(postSvc, validate, log),
	)

	return &testApp{
		handler:     delivery_http.NewRouter(routes, gate, log, metrics),
		storeCalls:  calls,
		tokens:      tokens,
		userService: userSvc,
	}
}

func (a *testApp) signup(t *testing.T, email, password string) {
	t.Helper()
	_, err := a.userService.CreateUser(context.Background(), &model.CreateUserDTO{Email: email, Password: &password})
	require.NoError(t, err)
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	var body auth_http.LoginResponse
	apitest.New().
		Handler(a.handler).
		Post("/auth/login").
		FormData("username", email).
		FormData("password", password).
		Expect(t).
		Status(http.StatusCreated).
		End().
		JSON(&body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestRouter_ProtectedRoutesRejectBeforeStoreAccess(t *testing.T) {
	app := newTestApp(t)
	expired, _, err := token_jwt.NewManager("test-secret", time.Hour, "blog-service").
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		Issue(&model.Principal{UserID: 1, Username: "a@x.com"})
	require.NoError(t, err)
	forged, _, err := token_jwt.NewManager("other-secret", time.Hour, "blog-service").
		Issue(&model.Principal{UserID: 1, Username: "a@x.com"})
	require.NoError(t, err)

	protected := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/profile", ""},
		{http.MethodGet, "/post/1", ""},
		{http.MethodGet, "/filtered-posts/x", ""},
		{http.MethodPost, "/post", `{"title":"T","authorEmail":"a@x.com"}`},
		{http.MethodPut, "/publish/1", ""},
		{http.MethodDelete, "/post/1", ""},
	}
	credentials := map[string]string{
		"missing":   "",
		"malformed": "Bearer not-a-jwt",
		"expired":   "Bearer " + expired,
		"forged":    "Bearer " + forged,
		"scheme":    "Token " + forged,
	}

	for _, route := range protected {
		for name, header := range credentials {
			t.Run(fmt.Sprintf("%s %s %s", route.method, route.path, name), func(t *testing.T) {
				req := apitest.New().Handler(app.handler).Method(route.method).URL(route.path)
				if header != "" {
					req = req.Header("Authorization", header)
				}
				if route.body != "" {
					req = req.JSON(route.body)
				}
				req.Expect(t).
					Status(http.StatusUnauthorized).
					Assert(jsonpath.Equal("$.statusCode", float64(http.StatusUnauthorized))).
					End()
			})
		}
	}

	assert.Equal(t, int64(0), app.storeCalls.Load())
}

func TestRouter_PublicRoutesNeedNoToken(t *testing.T) {
	app := newTestApp(t)

	apitest.New().
		Handler(app.handler).
		Get("/feed").
		Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()

	apitest.New().
		Handler(app.handler).
		Post("/user").
		JSON(`{"email":"a@x.com","name":"Ann"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.email", "a@x.com")).
		End()

	apitest.New().
		Handler(app.handler).
		Get("/health").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.status", "ok")).
		End()
}

func TestRouter_LoginThenProfile(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "a@x.com", "pw")

	token := app.login(t, "a@x.com", "pw")

	apitest.New().
		Handler(app.handler).
		Get("/profile").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.username", "a@x.com")).
		Assert(jsonpath.Equal("$.userId", float64(1))).
		End()

	principal, err := app.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", principal.Username)
}

func TestRouter_LoginFailures(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "a@x.com", "pw")

	_, err := app.userService.CreateUser(context.Background(), &model.CreateUserDTO{Email: "nopass@x.com"})
	require.NoError(t, err)

	attempts := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "a@x.com", "nope"},
		{"unknown user", "ghost@x.com", "pw"},
		{"user without password", "nopass@x.com", "anything"},
	}

	for _, tt := range attempts {
		t.Run(tt.name, func(t *testing.T) {
			apitest.New().
				Handler(app.handler).
				Post("/auth/login").
				FormData("username", tt.username).
				FormData("password", tt.password).
				Expect(t).
				Status(http.StatusUnauthorized).
				Assert(jsonpath.Equal("$.message", "Unauthorized")).
				End()
		})
	}
}

func TestRouter_DraftPublishDeleteScenario(t *testing.T) {
	app := newTestApp(t)

	apitest.New().
		Handler(app.handler).
		Post("/user").
		JSON(`{"email":"a@x.com","password":"pw"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()
	auth := "Bearer " + app.login(t, "a@x.com", "pw")

	var draft model.Post
	apitest.New().
		Handler(app.handler).
		Post("/post").
		Header("Authorization", auth).
		JSON(`{"title":"T","authorEmail":"a@x.com"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.published", false)).
		End().
		JSON(&draft)
	require.NotZero(t, draft.ID)
	postPath := fmt.Sprintf("/post/%d", draft.ID)

	apitest.New().
		Handler(app.handler).
		Get("/feed").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 0)).
		End()

	for i := 0; i < 2; i++ {
		apitest.New().
			Handler(app.handler).
			Put(fmt.Sprintf("/publish/%d", draft.ID)).
			Header("Authorization", auth).
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.Equal("$.published", true)).
			End()
	}

	apitest.New().
		Handler(app.handler).
		Get("/feed").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 1)).
		Assert(jsonpath.Equal("$[0].title", "T")).
		End()

	apitest.New().
		Handler(app.handler).
		Get("/filtered-posts/T").
		Header("Authorization", auth).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 1)).
		End()

	apitest.New().
		Handler(app.handler).
		Delete(postPath).
		Header("Authorization", auth).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.title", "T")).
		Assert(jsonpath.Equal("$.published", true)).
		End()

	apitest.New().
		Handler(app.handler).
		Get("/feed").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 0)).
		End()

	apitest.New().
		Handler(app.handler).
		Get(postPath).
		Header("Authorization", auth).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestRouter_ClientErrors(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "a@x.com", "pw")
	auth := "Bearer " + app.login(t, "a@x.com", "pw")

	apitest.New().
		Handler(app.handler).
		Post("/user").
		JSON(`{"email":"a@x.com"}`).
		Expect(t).
		Status(http.StatusConflict).
		End()

	apitest.New().
		Handler(app.handler).
		Post("/user").
		JSON(fmt.Sprintf(`{"email":"b@x.com","password":%q}`, strings.Repeat("é", 40))).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.message", "validation failed")).
		End()

	apitest.New().
		Handler(app.handler).
		Post("/post").
		Header("Authorization", auth).
		JSON(`{"title":"T","authorEmail":"ghost@x.com"}`).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.message", "author not found")).
		End()

	apitest.New().
		Handler(app.handler).
		Post("/post").
		Header("Authorization", auth).
		JSON(`{"authorEmail":"a@x.com"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	apitest.New().
		Handler(app.handler).
		Put("/publish/abc").
		Header("Authorization", auth).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestRouter_UnknownRoutesAndMethods(t *testing.T) {
	app := newTestApp(t)

	apitest.New().
		Handler(app.handler).
		Get("/nope").
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.message", "Cannot GET /nope")).
		End()

	apitest.New().
		Handler(app.handler).
		Patch("/feed").
		Expect(t).
		Status(http.StatusMethodNotAllowed).
		End()
}

func TestRouter_GlobalHeaders(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get(delivery_http.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set(delivery_http.RequestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(delivery_http.RequestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_PanicRecovered(t *testing.T) {
	log := logger.New("test")
	metrics := prometheus.NewPrometheusMetricsProvider()
	gate := delivery_http.NewGate(auth_http.NewTokenStrategy(token_jwt.NewManager("s", time.Hour, "i"), log, metrics), log)
	routes := []delivery_http.Route{{
		Method: http.MethodGet,
		Path:   "/boom",
		Policy: delivery_http.Public,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}),
	}}

	rec := httptest.NewRecorder()
	delivery_http.NewRouter(routes, gate, log, metrics).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"statusCode":500`))
}

func TestRoutes_PolicyTable(t *testing.T) {
	routes := delivery_http.Routes(&auth_http.API{}, &user_http.API{}, &post_http.API{})
	policies := make(map[string]delivery_http.Policy, len(routes))
	for _, r := range routes {
		policies[r.Method+" "+r.Path] = r.Policy
	}

	assert.Equal(t, map[string]delivery_http.Policy{
		"GET /health":                       delivery_http.Public,
		"POST /auth/login":                  delivery_http.Public,
		"GET /profile":                      delivery_http.Protected,
		"GET /post/:id":                     delivery_http.Protected,
		"GET /feed":                         delivery_http.Public,
		"GET /filtered-posts/:searchString": delivery_http.Protected,
		"POST /post":                        delivery_http.Protected,
		"POST /user":                        delivery_http.Public,
		"PUT /publish/:id":                  delivery_http.Protected,
		"DELETE /post/:id":                  delivery_http.Protected,
	}, policies)
}

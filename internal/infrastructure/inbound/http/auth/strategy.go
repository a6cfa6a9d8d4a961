package auth_http

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"regexp"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/inbound/http/httputil"
)

// Strategy turns a request into a principal or fails with
// custom_errors.ErrUnauthenticated.
type Strategy interface {
	Name() string
	Authenticate(r *http.Request) (*model.Principal, error)
}

type CredentialsVerifier interface {
	VerifyCredentials(ctx context.Context, email, password string) (*model.Principal, error)
}

type TokenVerifier interface {
	Verify(raw string) (*model.Principal, error)
}

var bearerTokenRE = regexp.MustCompile(`^(?i:bearer)\s+(\S+)$`)

type PasswordStrategy struct {
	verifier CredentialsVerifier
	log      ports.Logger
	metrics  ports.MetricsProvider
}

func NewPasswordStrategy(verifier CredentialsVerifier, log ports.Logger, metrics ports.MetricsProvider) *PasswordStrategy {
	return &PasswordStrategy{verifier: verifier, log: log, metrics: metrics}
}

func (s *PasswordStrategy) Name() string { return "password" }

type loginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Authenticate reads username and password from a JSON body or from form
// fields. A malformed body fails with custom_errors.ErrInvalidInput.
func (s *PasswordStrategy) Authenticate(r *http.Request) (*model.Principal, error) {
	creds, err := readCredentials(r)
	if err != nil {
		s.log.Debug("Failed to read login credentials", slog.String("error", err.Error()))
		s.metrics.IncrementAuthAttempts(s.Name(), false)
		return nil, err
	}
	if creds.Username == "" || creds.Password == "" {
		s.metrics.IncrementAuthAttempts(s.Name(), false)
		return nil, custom_errors.ErrUnauthenticated
	}

	principal, err := s.verifier.VerifyCredentials(r.Context(), creds.Username, creds.Password)
	if err != nil {
		s.metrics.IncrementAuthAttempts(s.Name(), false)
		return nil, err
	}

	s.metrics.IncrementAuthAttempts(s.Name(), true)
	return principal, nil
}

func readCredentials(r *http.Request) (*loginCredentials, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var creds loginCredentials
		if err := httputil.DecodeJSON(r, &creds); err != nil {
			return nil, errors.Join(custom_errors.ErrInvalidInput, err)
		}
		return &creds, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errors.Join(custom_errors.ErrInvalidInput, err)
	}
	return &loginCredentials{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}, nil
}

type TokenStrategy struct {
	verifier TokenVerifier
	log      ports.Logger
	metrics  ports.MetricsProvider
}

func NewTokenStrategy(verifier TokenVerifier, log ports.Logger, metrics ports.MetricsProvider) *TokenStrategy {
	return &TokenStrategy{verifier: verifier, log: log, metrics: metrics}
}

func (s *TokenStrategy) Name() string { return "token" }

func (s *TokenStrategy) Authenticate(r *http.Request) (*model.Principal, error) {
	groups := bearerTokenRE.FindStringSubmatch(r.Header.Get("Authorization"))
	if len(groups) == 0 {
		s.log.Debug("Bearer token not found")
		s.metrics.IncrementAuthAttempts(s.Name(), false)
		return nil, custom_errors.ErrUnauthenticated
	}

	principal, err := s.verifier.Verify(groups[1])
	if err != nil {
		s.log.Debug("Token rejected", slog.String("error", err.Error()))
		s.metrics.IncrementAuthAttempts(s.Name(), false)
		return nil, errors.Join(custom_errors.ErrUnauthenticated, err)
	}

	s.metrics.IncrementAuthAttempts(s.Name(), true)
	return principal, nil
}

package token_jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
)

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 tokens carrying a principal. Tokens
// are self-contained; nothing is stored server side.
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, issuer string) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// WithClock replaces the time source, used for expiry tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) Issue(principal *model.Principal) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: principal.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(principal.UserID, 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", custom_errors.ErrTokenIssue, err)
	}
	return signed, expiresAt, nil
}

func (m *Manager) Verify(raw string) (*model.Principal, error) {
	parsed := &claims{}
	_, err := jwt.ParseWithClaims(raw, parsed, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", custom_errors.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil || parsed.Username == "" {
		return nil, fmt.Errorf("%w: malformed subject", custom_errors.ErrInvalidToken)
	}

	return &model.Principal{UserID: userID, Username: parsed.Username}, nil
}

func (m *Manager) keyFunc(*jwt.Token) (any, error) {
	return m.secret, nil
}

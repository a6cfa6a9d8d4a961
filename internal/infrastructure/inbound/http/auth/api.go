package auth_http

import (
	ports "blog-service/internal/domain/ports/output"
)

type API struct {
	Login   *LoginHandler
	Profile *ProfileHandler
}

func NewAPI(password Strategy, issuer TokenIssuer, log ports.Logger) *API {
	return &API{
		Login:   NewLoginHandler(password, issuer, log),
		Profile: NewProfileHandler(),
	}
}

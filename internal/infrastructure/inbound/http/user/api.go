package user_http

import (
	"github.com/go-playground/validator/v10"

	user_service "blog-service/internal/domain/ports/input/user"
	ports "blog-service/internal/domain/ports/output"
)

type API struct {
	CreateUser *CreateUserHandler
}

func NewAPI(userService user_service.Service, validate *validator.Validate, log ports.Logger) *API {
	return &API{
		CreateUser: NewCreateUserHandler(userService, validate, log),
	}
}

package user_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/inbound/http/httputil"
)

type UserCreator interface {
	CreateUser(ctx context.Context, user *model.CreateUserDTO) (*model.User, error)
}

type CreateUserHandler struct {
	userService UserCreator
	validate    *validator.Validate
	log         ports.Logger
}

func NewCreateUserHandler(userService UserCreator, validate *validator.Validate, log ports.Logger) *CreateUserHandler {
	return &CreateUserHandler{
		userService: userService,
		validate:    validate,
		log:         log,
	}
}

type CreateUserRequest struct {
	Name     *string `json:"name"`
	Email    string  `json:"email" validate:"required,email"`
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
}

func (h *CreateUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.log.Debug("Failed to decode user", slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("User validation failed", slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusBadRequest, "validation failed")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), &model.CreateUserDTO{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.log.Debug("Error creating user", slog.String("email", req.Email), slog.String("error", err.Error()))
		switch {
		case errors.Is(err, custom_errors.ErrUserExists):
			httputil.WriteError(w, http.StatusConflict, "user with this email already exists")
		case errors.Is(err, custom_errors.ErrValidation):
			httputil.WriteError(w, http.StatusBadRequest, "validation failed")
		case errors.Is(err, custom_errors.ErrDatabaseQuery):
			h.log.Error("Database error", slog.String("email", req.Email), slog.String("error", err.Error()))
			httputil.WriteError(w, http.StatusInternalServerError, "database error")
		default:
			h.log.Error("Unexpected error creating user", slog.String("email", req.Email), slog.String("error", err.Error()))
			httputil.WriteError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, user)
}

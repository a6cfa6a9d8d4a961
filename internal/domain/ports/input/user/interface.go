package user_service

import (
	"context"

	model "blog-service/internal/domain/models"
)

type Service interface {
	CreateUser(ctx context.Context, user *model.CreateUserDTO) (*model.User, error)
}

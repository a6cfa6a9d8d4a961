package user_repository

import (
	"context"

	model "blog-service/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/user --outpkg mocks --filename Repository.go
type Repository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

package auth_service

import (
	"context"

	model "blog-service/internal/domain/models"
)

type Service interface {
	VerifyCredentials(ctx context.Context, email, password string) (*model.Principal, error)
}

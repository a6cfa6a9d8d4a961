package post_repository

import (
	"context"

	model "blog-service/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/post --outpkg mocks --filename Repository.go
type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error)
	Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error)
	// Delete removes the post and returns it as it was before removal.
	Delete(ctx context.Context, id int64) (*model.Post, error)
}

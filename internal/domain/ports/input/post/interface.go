package post_service

import (
	"context"

	model "blog-service/internal/domain/models"
)

type Service interface {
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
	ListPublishedPosts(ctx context.Context) ([]*model.Post, error)
	SearchPosts(ctx context.Context, search string) ([]*model.Post, error)
	CreateDraft(ctx context.Context, draft *model.CreateDraftDTO) (*model.Post, error)
	PublishPost(ctx context.Context, id int64) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) (*model.Post, error)
}

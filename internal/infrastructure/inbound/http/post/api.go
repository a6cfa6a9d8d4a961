package post_http

import (
	"github.com/go-playground/validator/v10"

	post_service "blog-service/internal/domain/ports/input/post"
	ports "blog-service/internal/domain/ports/output"
)

type API struct {
	GetPost       *GetPostHandler
	Feed          *FeedHandler
	FilteredPosts *FilteredPostsHandler
	CreateDraft   *CreateDraftHandler
	PublishPost   *PublishPostHandler
	DeletePost    *DeletePostHandler
}

func NewAPI(postService post_service.Service, validate *validator.Validate, log ports.Logger) *API {
	return &API{
		GetPost:       NewGetPostHandler(postService, validate, log),
		Feed:          NewFeedHandler(postService, log),
		FilteredPosts: NewFilteredPostsHandler(postService, log),
		CreateDraft:   NewCreateDraftHandler(postService, validate, log),
		PublishPost:   NewPublishPostHandler(postService, validate, log),
		DeletePost:    NewDeletePostHandler(postService, validate, log),
	}
}

package post_service

import (
	"context"
	"errors"
	"log/slog"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	post_repository "blog-service/internal/domain/ports/output/post"
	user_repository "blog-service/internal/domain/ports/output/user"
)

type PostService struct {
	postRepo post_repository.Repository
	userRepo user_repository.Repository
	log      ports.Logger
	metrics  ports.MetricsProvider
}

func NewPostService(
	postRepo post_repository.Repository,
	userRepo user_repository.Repository,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		log:      log,
		metrics:  metrics,
	}
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			s.log.Debug("Post not found", slog.Int64("id", id))
			s.metrics.IncrementPostOperations("get", false)
			return nil, custom_errors.ErrPostNotFound
		default:
			s.log.Error("Failed to get post by id", slog.Int64("id", id), slog.String("error", err.Error()))
			s.metrics.IncrementPostOperations("get", false)
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	s.metrics.IncrementPostOperations("get", true)
	return post, nil
}

func (s *PostService) ListPublishedPosts(ctx context.Context) ([]*model.Post, error) {
	published := true
	return s.list(ctx, "list_published", model.PostFilters{Published: &published})
}

// SearchPosts matches search against title or content. An empty search
// matches every post.
func (s *PostService) SearchPosts(ctx context.Context, search string) ([]*model.Post, error) {
	return s.list(ctx, "search", model.PostFilters{Search: &search})
}

func (s *PostService) list(ctx context.Context, operation string, filters model.PostFilters) ([]*model.Post, error) {
	posts, err := s.postRepo.List(ctx, filters)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("operation", operation), slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations(operation, false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementPostOperations(operation, true)
	return posts, nil
}

// CreateDraft resolves the author by email and stores an unpublished post
// owned by that user.
func (s *PostService) CreateDraft(ctx context.Context, draft *model.CreateDraftDTO) (*model.Post, error) {
	if draft.Title == "" || draft.AuthorEmail == "" {
		s.log.Debug("Draft is missing required fields")
		s.metrics.IncrementPostOperations("create_draft", false)
		return nil, custom_errors.ErrValidation
	}

	author, err := s.userRepo.GetByEmail(ctx, draft.AuthorEmail)
	if err != nil {
		s.metrics.IncrementPostOperations("create_draft", false)
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Draft author not found", slog.String("author_email", draft.AuthorEmail))
			return nil, custom_errors.ErrAuthorNotFound
		}
		s.log.Error("Failed to resolve draft author", slog.String("author_email", draft.AuthorEmail), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	created, err := s.postRepo.Create(ctx, &model.Post{
		Title:     draft.Title,
		Content:   draft.Content,
		Published: false,
		AuthorID:  author.ID,
	})
	if err != nil {
		s.metrics.IncrementPostOperations("create_draft", false)
		if errors.Is(err, custom_errors.ErrAuthorNotFound) {
			s.log.Debug("Draft author vanished before insert", slog.Int64("author_id", author.ID))
			return nil, custom_errors.ErrAuthorNotFound
		}
		s.log.Error("Failed to create draft", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementPostOperations("create_draft", true)
	s.log.Info("Draft created", slog.Int64("post_id", created.ID), slog.Int64("author_id", author.ID))
	return created, nil
}

// PublishPost is idempotent: publishing a published post succeeds and
// leaves it published.
func (s *PostService) PublishPost(ctx context.Context, id int64) (*model.Post, error) {
	published := true
	updated, err := s.postRepo.Update(ctx, id, &model.UpdatePostDTO{Published: &published})
	if err != nil {
		s.metrics.IncrementPostOperations("publish", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for publish", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to publish post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementPostOperations("publish", true)
	s.log.Info("Post published", slog.Int64("post_id", id))
	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int64) (*model.Post, error) {
	deleted, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		s.metrics.IncrementPostOperations("delete", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for delete", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to delete post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementPostOperations("delete", true)
	s.log.Info("Post deleted", slog.Int64("post_id", id))
	return deleted, nil
}

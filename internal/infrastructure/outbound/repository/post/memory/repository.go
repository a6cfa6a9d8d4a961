package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
)

type PostRepository struct {
	log    ports.Logger
	mu     sync.RWMutex
	posts  map[int64]*model.Post
	nextID int64
}

func NewPostRepository(log ports.Logger) *PostRepository {
	return &PostRepository{
		log:    log,
		posts:  make(map[int64]*model.Post),
		nextID: 1,
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.log.Debug("Creating new post (memory impl)", slog.Int64("author_id", post.AuthorID), slog.String("title", post.Title))

	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	newPost := &model.Post{
		ID:        p.nextID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		AuthorID:  post.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.nextID++

	p.posts[newPost.ID] = newPost

	p.log.Debug("Successfully created post (memory impl)", slog.Int64("id", newPost.ID), slog.Int64("author_id", newPost.AuthorID))
	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	return &result, nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error) {
	p.log.Debug("Listing posts with filters (memory impl)",
		slog.Any("published", filters.Published),
		slog.Any("search", filters.Search))

	p.mu.RLock()
	defer p.mu.RUnlock()

	filteredPosts := make([]*model.Post, 0, len(p.posts))
	for _, post := range p.posts {
		if filters.Published != nil && post.Published != *filters.Published {
			continue
		}
		if filters.Search != nil && !matchesSearch(post, *filters.Search) {
			continue
		}
		postCopy := *post
		filteredPosts = append(filteredPosts, &postCopy)
	}

	sort.Slice(filteredPosts, func(i, j int) bool {
		return filteredPosts[i].ID < filteredPosts[j].ID
	})

	p.log.Debug("Returning filtered posts", slog.Int("count", len(filteredPosts)))
	return filteredPosts, nil
}

func matchesSearch(post *model.Post, search string) bool {
	if strings.Contains(post.Title, search) {
		return true
	}
	return post.Content != nil && strings.Contains(*post.Content, search)
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	if update.Published != nil {
		post.Published = *update.Published
	}
	post.UpdatedAt = time.Now()

	result := *post
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	delete(p.posts, id)
	result := *post
	return &result, nil
}

package post_repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
	post_repository "blog-service/internal/domain/ports/output/post"
	"blog-service/internal/infrastructure/logger"
	"blog-service/internal/infrastructure/outbound/repository/post/memory"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func setupPostTest(t *testing.T) post_repository.Repository {
	t.Helper()
	return memory.NewPostRepository(logger.New("test"))
}

func seedPosts(t *testing.T, repo post_repository.Repository, posts ...*model.Post) []*model.Post {
	t.Helper()
	created := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		c, err := repo.Create(context.Background(), p)
		require.NoError(t, err)
		created = append(created, c)
	}
	return created
}

func TestPostRepository_Create(t *testing.T) {
	repo := setupPostTest(t)

	first, err := repo.Create(context.Background(), &model.Post{Title: "First", AuthorID: 1})
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), &model.Post{Title: "Second", Content: strPtr("body"), AuthorID: 1})
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.False(t, first.Published)
	assert.Nil(t, first.Content)
	assert.Equal(t, "body", *second.Content)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestPostRepository_GetByID(t *testing.T) {
	repo := setupPostTest(t)
	created := seedPosts(t, repo, &model.Post{Title: "Hello", AuthorID: 3})

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{name: "existing post", id: created[0].ID},
		{name: "missing post", id: 999, wantErr: custom_errors.ErrPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Hello", got.Title)
			assert.Equal(t, int64(3), got.AuthorID)
		})
	}
}

func TestPostRepository_List(t *testing.T) {
	repo := setupPostTest(t)
	seedPosts(t, repo,
		&model.Post{Title: "Go tips", Content: strPtr("use contexts"), AuthorID: 1},
		&model.Post{Title: "Cooking", Content: nil, AuthorID: 1, Published: true},
		&model.Post{Title: "Travel", Content: strPtr("Go to Lisbon"), AuthorID: 2, Published: true},
	)

	tests := []struct {
		name       string
		filters    model.PostFilters
		wantTitles []string
	}{
		{
			name:       "no filters returns everything in id order",
			filters:    model.PostFilters{},
			wantTitles: []string{"Go tips", "Cooking", "Travel"},
		},
		{
			name:       "published only",
			filters:    model.PostFilters{Published: boolPtr(true)},
			wantTitles: []string{"Cooking", "Travel"},
		},
		{
			name:       "search matches title or content",
			filters:    model.PostFilters{Search: strPtr("Go")},
			wantTitles: []string{"Go tips", "Travel"},
		},
		{
			name:       "search is case sensitive",
			filters:    model.PostFilters{Search: strPtr("go")},
			wantTitles: []string{},
		},
		{
			name:       "empty search matches all",
			filters:    model.PostFilters{Search: strPtr("")},
			wantTitles: []string{"Go tips", "Cooking", "Travel"},
		},
		{
			name:       "combined filters",
			filters:    model.PostFilters{Published: boolPtr(true), Search: strPtr("Lisbon")},
			wantTitles: []string{"Travel"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(context.Background(), tt.filters)
			require.NoError(t, err)

			titles := make([]string, 0, len(got))
			for _, p := range got {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestPostRepository_Update(t *testing.T) {
	repo := setupPostTest(t)
	created := seedPosts(t, repo, &model.Post{Title: "Draft", AuthorID: 1})

	updated, err := repo.Update(context.Background(), created[0].ID, &model.UpdatePostDTO{Published: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Published)

	again, err := repo.Update(context.Background(), created[0].ID, &model.UpdatePostDTO{Published: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, again.Published)

	_, err = repo.Update(context.Background(), 42, &model.UpdatePostDTO{Published: boolPtr(true)})
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestPostRepository_Delete(t *testing.T) {
	repo := setupPostTest(t)
	created := seedPosts(t, repo, &model.Post{Title: "Gone soon", AuthorID: 1, Published: true})

	deleted, err := repo.Delete(context.Background(), created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Gone soon", deleted.Title)
	assert.True(t, deleted.Published)

	_, err = repo.GetByID(context.Background(), created[0].ID)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

	_, err = repo.Delete(context.Background(), created[0].ID)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/outbound/repository/postgres/db"
)

const postColumns = "id, title, content, published, author_id, created_at, updated_at"

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics}
}

func scanPost(row pgx.Row, post *model.Post) error {
	return row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Published,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.Int64("author_id", post.AuthorID), slog.String("title", post.Title))

	now := time.Now()
	args := pgx.NamedArgs{
		"title":      post.Title,
		"content":    post.Content,
		"published":  post.Published,
		"author_id":  post.AuthorID,
		"created_at": now,
		"updated_at": now,
	}
	query := `
		INSERT INTO posts (title, content, published, author_id, created_at, updated_at)
		VALUES (@title, @content, @published, @author_id, @created_at, @updated_at)
		RETURNING ` + postColumns

	var created model.Post
	if err := scanPost(p.db.QueryRow(ctx, query, args), &created); err != nil {
		p.metrics.IncrementDatabaseQueries("post_create", false)
		p.metrics.RecordDatabaseQueryDuration("post_create", time.Since(start))
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == db.CodeForeignKeyViolation {
			p.log.Debug("Post author does not exist", slog.Int64("author_id", post.AuthorID))
			return nil, custom_errors.ErrAuthorNotFound
		}
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_create", true)
	p.metrics.RecordDatabaseQueryDuration("post_create", time.Since(start))
	p.log.Debug("Successfully created post", slog.Int64("id", created.ID), slog.Int64("author_id", created.AuthorID))
	return &created, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by ID", slog.Int64("id", id))

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id`
	post := &model.Post{}
	if err := scanPost(p.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id}), post); err != nil {
		p.metrics.IncrementDatabaseQueries("post_get_by_id", false)
		p.metrics.RecordDatabaseQueryDuration("post_get_by_id", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_get_by_id", true)
	p.metrics.RecordDatabaseQueryDuration("post_get_by_id", time.Since(start))
	return post, nil
}

// List returns posts in id order. Search uses strpos so the value is
// matched literally and case-sensitively against title and content.
func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error) {
	start := time.Now()
	p.log.Debug("Listing posts with filters",
		slog.Any("published", filters.Published),
		slog.Any("search", filters.Search))

	args := pgx.NamedArgs{}
	whereClauses := []string{}

	if filters.Published != nil {
		whereClauses = append(whereClauses, "published = @published")
		args["published"] = *filters.Published
	}
	if filters.Search != nil {
		whereClauses = append(whereClauses, "(strpos(title, @search) > 0 OR strpos(content, @search) > 0)")
		args["search"] = *filters.Search
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY id ASC"

	p.log.Debug("Executing list query", slog.String("query", query))
	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.metrics.IncrementDatabaseQueries("post_list", false)
		p.metrics.RecordDatabaseQueryDuration("post_list", time.Since(start))
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		var post model.Post
		if err := scanPost(rows, &post); err != nil {
			p.metrics.IncrementDatabaseQueries("post_list", false)
			p.metrics.RecordDatabaseQueryDuration("post_list", time.Since(start))
			p.log.Error("Error scanning post during List", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		p.metrics.IncrementDatabaseQueries("post_list", false)
		p.metrics.RecordDatabaseQueryDuration("post_list", time.Since(start))
		p.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_list", true)
	p.metrics.RecordDatabaseQueryDuration("post_list", time.Since(start))
	p.log.Debug("Retrieved posts in List", slog.Int("count", len(posts)))
	return posts, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Updating post", slog.Int64("id", id), slog.Any("update_fields", map[string]bool{
		"published": update.Published != nil,
	}))

	setClauses := []string{"updated_at = @updated_at"}
	args := pgx.NamedArgs{"id": id, "updated_at": time.Now()}

	if update.Published != nil {
		setClauses = append(setClauses, "published = @published")
		args["published"] = *update.Published
	}

	query := "UPDATE posts SET " + strings.Join(setClauses, ", ") + " WHERE id = @id RETURNING " + postColumns

	var updated model.Post
	if err := scanPost(p.db.QueryRow(ctx, query, args), &updated); err != nil {
		p.metrics.IncrementDatabaseQueries("post_update", false)
		p.metrics.RecordDatabaseQueryDuration("post_update", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id during Update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_update", true)
	p.metrics.RecordDatabaseQueryDuration("post_update", time.Since(start))
	p.log.Debug("Successfully updated post", slog.Int64("id", updated.ID), slog.Bool("published", updated.Published))
	return &updated, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Deleting post", slog.Int64("id", id))

	query := `DELETE FROM posts WHERE id = @id RETURNING ` + postColumns

	var deleted model.Post
	if err := scanPost(p.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id}), &deleted); err != nil {
		p.metrics.IncrementDatabaseQueries("post_delete", false)
		p.metrics.RecordDatabaseQueryDuration("post_delete", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found during deletion", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_delete", true)
	p.metrics.RecordDatabaseQueryDuration("post_delete", time.Since(start))
	p.log.Debug("Successfully deleted post", slog.Int64("id", id))
	return &deleted, nil
}

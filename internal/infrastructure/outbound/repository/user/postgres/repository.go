package user_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/outbound/repository/postgres/db"
)

type UserRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewUserRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *UserRepository {
	return &UserRepository{db: db, log: log, metrics: metrics}
}

func (u *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	start := time.Now()
	u.log.Debug("Creating new user", slog.String("email", user.Email))

	args := pgx.NamedArgs{
		"email":         user.Email,
		"name":          user.Name,
		"password_hash": user.PasswordHash,
	}
	query := `
		INSERT INTO users (email, name, password_hash)
		VALUES (@email, @name, @password_hash)
		RETURNING id, email, name, password_hash, created_at`

	var created model.User
	err := u.db.QueryRow(ctx, query, args).Scan(
		&created.ID,
		&created.Email,
		&created.Name,
		&created.PasswordHash,
		&created.CreatedAt,
	)
	if err != nil {
		u.metrics.IncrementDatabaseQueries("user_create", false)
		u.metrics.RecordDatabaseQueryDuration("user_create", time.Since(start))
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == db.CodeUniqueViolation {
			u.log.Debug("User email already taken", slog.String("email", user.Email))
			return nil, custom_errors.ErrUserExists
		}
		u.log.Error("Error creating user", slog.String("email", user.Email), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	u.metrics.IncrementDatabaseQueries("user_create", true)
	u.metrics.RecordDatabaseQueryDuration("user_create", time.Since(start))
	u.log.Debug("Successfully created user", slog.Int64("id", created.ID))
	return &created, nil
}

func (u *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM users WHERE email = @email`
	return u.getOne(ctx, "user_get_by_email", query, pgx.NamedArgs{"email": email}, slog.String("email", email))
}

func (u *UserRepository) getOne(ctx context.Context, queryType, query string, args pgx.NamedArgs, key slog.Attr) (*model.User, error) {
	start := time.Now()
	u.log.Debug("Getting user", slog.String("query_type", queryType), key)

	user := &model.User{}
	err := u.db.QueryRow(ctx, query, args).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		u.metrics.IncrementDatabaseQueries(queryType, false)
		u.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			u.log.Debug("User not found", key)
			return nil, custom_errors.ErrUserNotFound
		}
		u.log.Error("Error getting user", key, slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	u.metrics.IncrementDatabaseQueries(queryType, true)
	u.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
	return user, nil
}

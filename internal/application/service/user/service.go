package user_service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	user_repository "blog-service/internal/domain/ports/output/user"
)

type UserService struct {
	userRepo   user_repository.Repository
	log        ports.Logger
	metrics    ports.MetricsProvider
	bcryptCost int
}

func NewUserService(userRepo user_repository.Repository, log ports.Logger, metrics ports.MetricsProvider, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		userRepo:   userRepo,
		log:        log,
		metrics:    metrics,
		bcryptCost: bcryptCost,
	}
}

// CreateUser stores a new user. Email uniqueness is left to the store.
// A user created without a password can never log in.
func (s *UserService) CreateUser(ctx context.Context, input *model.CreateUserDTO) (*model.User, error) {
	if input.Email == "" {
		s.metrics.IncrementUserOperations("create", false)
		return nil, custom_errors.ErrValidation
	}

	user := &model.User{
		Email: input.Email,
		Name:  input.Name,
	}

	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.bcryptCost)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			s.log.Debug("Password exceeds bcrypt limit", slog.Int("bytes", len(*input.Password)))
			s.metrics.IncrementUserOperations("create", false)
			return nil, custom_errors.ErrValidation
		}
		if err != nil {
			s.log.Error("Failed to hash password", slog.String("error", err.Error()))
			s.metrics.IncrementUserOperations("create", false)
			return nil, custom_errors.ErrPasswordHash
		}
		hashed := string(hash)
		user.PasswordHash = &hashed
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		s.metrics.IncrementUserOperations("create", false)
		if errors.Is(err, custom_errors.ErrUserExists) {
			s.log.Debug("User email already registered", slog.String("email", input.Email))
			return nil, custom_errors.ErrUserExists
		}
		s.log.Error("Failed to create user", slog.String("email", input.Email), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementUserOperations("create", true)
	s.log.Info("User created", slog.Int64("user_id", created.ID))
	return created, nil
}

package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
)

type UserRepository struct {
	log     ports.Logger
	mu      sync.RWMutex
	users   map[int64]*model.User
	byEmail map[string]int64
	nextID  int64
}

func NewUserRepository(log ports.Logger) *UserRepository {
	return &UserRepository{
		log:     log,
		users:   make(map[int64]*model.User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

func (u *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	u.log.Debug("Creating new user (memory impl)", slog.String("email", user.Email))

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.byEmail[user.Email]; exists {
		return nil, custom_errors.ErrUserExists
	}

	newUser := &model.User{
		ID:           u.nextID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now(),
	}
	u.nextID++

	u.users[newUser.ID] = newUser
	u.byEmail[newUser.Email] = newUser.ID

	result := *newUser
	return &result, nil
}

func (u *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	id, exists := u.byEmail[email]
	if !exists {
		u.log.Debug("User not found by email", slog.String("email", email))
		return nil, custom_errors.ErrUserNotFound
	}

	result := *u.users[id]
	return &result, nil
}

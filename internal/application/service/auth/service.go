package auth_service

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

type AuthService struct {
	userRepo user_repository.Repository
	log      ports.Logger
}

func NewAuthService(userRepo user_repository.Repository, log ports.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, log: log}
}

// VerifyCredentials returns ErrUnauthenticated for an unknown email, a user
// without a password and a wrong password alike.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*model.Principal, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Login for unknown user", slog.String("email", email))
			return nil, custom_errors.ErrUnauthenticated
		}
		s.log.Error("Failed to look up user for login", slog.String("email", email), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if user.PasswordHash == nil {
		s.log.Debug("Login for user without password", slog.Int64("user_id", user.ID))
		return nil, custom_errors.ErrUnauthenticated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		s.log.Debug("Password mismatch", slog.Int64("user_id", user.ID))
		return nil, custom_errors.ErrUnauthenticated
	}

	return model.NewPrincipal(user), nil
}

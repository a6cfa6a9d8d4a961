package user_service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
	"blog-service/internal/infrastructure/logger"
	"blog-service/internal/infrastructure/outbound/metrics/prometheus"
	user_repository_mock "blog-service/mocks/user"
)

func strPtr(s string) *string { return &s }

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name        string
		input       *model.CreateUserDTO
		mocks       func(userRepo *user_repository_mock.Repository)
		wantErrType error
	}{
		{
			name:  "Success without password",
			input: &model.CreateUserDTO{Email: "a@x.com", Name: strPtr("Ann")},
			mocks: func(userRepo *user_repository_mock.Repository) {
				userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "a@x.com" && *u.Name == "Ann" && u.PasswordHash == nil
				})).Return(&model.User{ID: 1, Email: "a@x.com", Name: strPtr("Ann")}, nil)
			},
		},
		{
			name:  "Success with password",
			input: &model.CreateUserDTO{Email: "b@x.com", Password: strPtr("s3cret")},
			mocks: func(userRepo *user_repository_mock.Repository) {
				userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.PasswordHash != nil &&
						bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("s3cret")) == nil
				})).Return(&model.User{ID: 2, Email: "b@x.com"}, nil)
			},
		},
		{
			name:  "Duplicate email",
			input: &model.CreateUserDTO{Email: "a@x.com"},
			mocks: func(userRepo *user_repository_mock.Repository) {
				userRepo.On("Create", mock.Anything, mock.Anything).Return(nil, custom_errors.ErrUserExists)
			},
			wantErrType: custom_errors.ErrUserExists,
		},
		{
			name:  "Store failure",
			input: &model.CreateUserDTO{Email: "a@x.com"},
			mocks: func(userRepo *user_repository_mock.Repository) {
				userRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
		{
			name:        "Password over 72 bytes",
			input:       &model.CreateUserDTO{Email: "a@x.com", Password: strPtr(strings.Repeat("é", 40))},
			mocks:       func(userRepo *user_repository_mock.Repository) {},
			wantErrType: custom_errors.ErrValidation,
		},
		{
			name:        "Missing email",
			input:       &model.CreateUserDTO{},
			mocks:       func(userRepo *user_repository_mock.Repository) {},
			wantErrType: custom_errors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := user_repository_mock.NewRepository(t)
			tt.mocks(userRepo)
			svc := NewUserService(userRepo, logger.New("test"), prometheus.NewPrometheusMetricsProvider(), bcrypt.MinCost)

			got, err := svc.CreateUser(context.Background(), tt.input)
			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input.Email, got.Email)
		})
	}
}

func TestNewUserService_ClampsCost(t *testing.T) {
	svc := NewUserService(user_repository_mock.NewRepository(t), logger.New("test"), prometheus.NewPrometheusMetricsProvider(), 100)
	assert.Equal(t, bcrypt.DefaultCost, svc.bcryptCost)
}

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

func TestUserService_Register(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	created := &models.User{ID: 1, Email: "alice@example.com", Name: "Alice", Role: models.RoleMentee}
	userRepo.On("Create", ctx, "alice@example.com", mock.AnythingOfType("string"), "Alice",
		(*string)(nil), models.RoleMentee, []int64{1, 2}, []int64(nil)).
		Run(func(args mock.Arguments) {
			hash := args.String(2)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter22hunter22")))
		}).
		Return(created, nil).Once()

	user, err := svc.Register(ctx, &models.RegisterUserRequest{
		Name:     "Alice",
		Email:    "  Alice@Example.COM ",
		Password: "hunter22hunter22",
		Role:     "MENTEE",
		SkillIDs: []int64{1, 2},
	})
	assert.NoError(t, err)
	assert.Equal(t, created, user)
	userRepo.AssertExpectations(t)
}

func TestUserService_Register_InvalidRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo, bcrypt.MinCost)

	user, err := svc.Register(context.Background(), &models.RegisterUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
		Role:     "ADMIN",
	})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	userRepo.On("Create", ctx, "alice@example.com", mock.AnythingOfType("string"), "Alice",
		(*string)(nil), models.RoleMentee, []int64(nil), []int64(nil)).
		Return(nil, apperrors.ConflictError("email already registered")).Once()

	user, err := svc.Register(ctx, &models.RegisterUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
		Role:     "MENTEE",
	})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUserService_UpdateProfile(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	name := "Alice B."
	skills := []int64{3}
	updated := &models.User{ID: 1, Name: name}
	userRepo.On("Update", ctx, int64(1), &name, (*string)(nil), &skills, (*[]int64)(nil)).
		Return(updated, nil).Once()

	user, err := svc.UpdateProfile(ctx, 1, 1, &models.UpdateProfileRequest{
		Name:     &name,
		SkillIDs: &skills,
	})
	assert.NoError(t, err)
	assert.Equal(t, updated, user)
	userRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile_OtherUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo, bcrypt.MinCost)

	name := "Eve"
	user, err := svc.UpdateProfile(context.Background(), 2, 1, &models.UpdateProfileRequest{Name: &name})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything)
}

func TestUserService_DeleteUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	userRepo.On("Delete", ctx, int64(1)).Return(nil).Once()
	assert.NoError(t, svc.DeleteUser(ctx, 1, 1))
	userRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser_OtherUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo, bcrypt.MinCost)

	err := svc.DeleteUser(context.Background(), 2, 1)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserService_GetProfile(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	profile := &models.UserProfile{User: models.User{ID: 1, Name: "Alice"}}
	userRepo.On("GetProfile", ctx, int64(1)).Return(profile, nil).Once()

	got, err := svc.GetProfile(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, profile, got)
}
package usecase

import (
	"context"
	"io"

	"firechat/internal/domain/entity"
	"firechat/internal/domain/repository"
	"firechat/pkg/errors"
	"firechat/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	authProvider AuthProvider
	avatarStore  AvatarStore
}

func NewAuthUseCase(userRepo repository.UserRepository, authProvider AuthProvider, avatarStore AvatarStore) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		authProvider: authProvider,
		avatarStore:  avatarStore,
	}
}

type RegisterInput struct {
	Email             string
	Password          string
	Avatar            io.Reader
	AvatarContentType string
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates the account in the identity provider, stores the avatar
// blob under the new uid and writes the user profile document. The avatar is
// mandatory.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Avatar == nil {
		return nil, errors.BadRequest("You must select an avatar image", nil)
	}

	uid, err := uc.authProvider.CreateUser(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	avatarURL, err := uc.avatarStore.UploadAvatar(ctx, uid, input.Avatar, input.AvatarContentType)
	if err != nil {
		return nil, errors.Internal("Failed to push image to storage", err)
	}

	user := &entity.User{
		UID:             uid,
		Email:           input.Email,
		ProfileImageURL: avatarURL,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, err := uc.authProvider.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.authProvider.SignInWithEmailPassword(email, password)
	if err != nil {
		logger.Warn("Login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.authProvider.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

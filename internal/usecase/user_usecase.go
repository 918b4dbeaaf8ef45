package usecase

import (
	"context"

	"firechat/internal/domain/entity"
	"firechat/internal/domain/repository"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

func (uc *UserUseCase) ResolveUser(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

// ListUsers returns conversation partner candidates, i.e. every user except
// the caller.
func (uc *UserUseCase) ListUsers(ctx context.Context, excludingUID string) ([]*entity.User, error) {
	return uc.userRepo.ListExcluding(ctx, excludingUID)
}

package repository

import (
	"context"

	"firechat/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, uid string) (*entity.User, error)
	ListExcluding(ctx context.Context, uid string) ([]*entity.User, error)
}

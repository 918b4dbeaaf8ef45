package repository

import (
	"context"

	"firechat/internal/domain/entity"
)

type RecentMessageRepository interface {
	Upsert(ctx context.Context, owner, peer string, entry *entity.RecentMessage) error
	ListByOwner(ctx context.Context, owner string) ([]*entity.RecentMessage, error)
}

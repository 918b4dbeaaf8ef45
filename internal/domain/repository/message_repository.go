package repository

import (
	"context"

	"firechat/internal/domain/entity"
)

// MessageRepository is the per-owner, per-peer message log. Append writes one
// physical copy under messages/{owner}/{peer}; callers decide how many copies
// a logical message gets.
type MessageRepository interface {
	Append(ctx context.Context, owner, peer string, message *entity.Message) error
	ListByConversation(ctx context.Context, owner, peer string, limit, offset int) ([]*entity.Message, int64, error)
}

package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"firechat/internal/domain/entity"
	"firechat/internal/domain/repository"
	"firechat/pkg/errors"
	"firechat/pkg/logger"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Append(ctx context.Context, owner, peer string, message *entity.Message) error {
	if message.DocumentID == "" {
		message.DocumentID = uuid.New().String()
	}

	_, err := r.client.Collection("messages").Doc(owner).Collection(peer).Doc(message.DocumentID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to append message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) ListByConversation(ctx context.Context, owner, peer string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("messages").Doc(owner).Collection(peer).OrderBy("timestamp", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while counting messages for %s/%s: %v", owner, peer, err)
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating messages for %s/%s: %v", owner, peer, err)
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		message.DocumentID = doc.Ref.ID

		messages = append(messages, &message)
	}

	return messages, total, nil
}

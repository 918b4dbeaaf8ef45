package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"firechat/internal/domain/entity"
	"firechat/internal/domain/repository"
	"firechat/pkg/errors"
	"firechat/pkg/logger"
)

type firestoreRecentMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreRecentMessageRepository(client *firestore.Client) repository.RecentMessageRepository {
	return &firestoreRecentMessageRepository{
		client: client,
	}
}

// Upsert overwrites the single recent row for (owner, peer). The document id
// is the peer uid, so a newer send between the same pair replaces the row
// instead of appending.
func (r *firestoreRecentMessageRepository) Upsert(ctx context.Context, owner, peer string, entry *entity.RecentMessage) error {
	_, err := r.client.Collection("recent_messages").Doc(owner).Collection("messages").Doc(peer).Set(ctx, entry)
	if err != nil {
		return errors.Internal("Failed to persist recent message", err)
	}

	return nil
}

func (r *firestoreRecentMessageRepository) ListByOwner(ctx context.Context, owner string) ([]*entity.RecentMessage, error) {
	query := r.client.Collection("recent_messages").Doc(owner).Collection("messages").OrderBy("timestamp", firestore.Desc)

	iter := query.Documents(ctx)
	var entries []*entity.RecentMessage

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating recent messages for %s: %v", owner, err)
			return nil, errors.Internal("Failed to iterate recent messages", err)
		}

		var entry entity.RecentMessage
		if err := doc.DataTo(&entry); err != nil {
			return nil, errors.Internal("Failed to parse recent message data", err)
		}
		entry.ID = doc.Ref.ID

		entries = append(entries, &entry)
	}

	return entries, nil
}

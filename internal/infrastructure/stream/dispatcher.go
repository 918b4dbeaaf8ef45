package stream

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"firechat/internal/domain/entity"
	"firechat/pkg/logger"
)

type ChangeKind int

const (
	Added ChangeKind = iota
	Modified
	Removed
)

// MessageEvent is one change on a conversation log partition. Err is set at
// most once per subscription; after an error no further events are delivered.
type MessageEvent struct {
	Kind    ChangeKind
	Message *entity.Message
	Err     error
}

// RecentEvent is one change on an owner's recent-conversation index.
type RecentEvent struct {
	Kind  ChangeKind
	Entry *entity.RecentMessage
	Err   error
}

// Dispatcher turns Firestore snapshot listeners into per-subscriber event
// channels. The first snapshot delivers the current state as Added events in
// query order, then incremental changes follow. Cancelling the context ends
// the subscription and closes the channel without an error event.
type Dispatcher struct {
	client *firestore.Client
}

func NewDispatcher(client *firestore.Client) *Dispatcher {
	return &Dispatcher{
		client: client,
	}
}

// SubscribeMessages streams the (owner, peer) log partition ordered by
// timestamp ascending.
func (d *Dispatcher) SubscribeMessages(ctx context.Context, owner, peer string) <-chan MessageEvent {
	events := make(chan MessageEvent, 16)

	go func() {
		defer close(events)

		iter := d.client.Collection("messages").Doc(owner).Collection(peer).
			OrderBy("timestamp", firestore.Asc).
			Snapshots(ctx)
		defer iter.Stop()

		for {
			snap, err := iter.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				logger.Error("Message subscription for %s/%s failed: %v", owner, peer, err)
				deliverMessage(ctx, events, MessageEvent{Err: err})
				return
			}

			for _, change := range snap.Changes {
				var message entity.Message
				if err := change.Doc.DataTo(&message); err != nil {
					logger.Warn("Skipping malformed message document %s: %v", change.Doc.Ref.ID, err)
					continue
				}
				message.DocumentID = change.Doc.Ref.ID

				if !deliverMessage(ctx, events, MessageEvent{Kind: kindOf(change.Kind), Message: &message}) {
					return
				}
			}
		}
	}()

	return events
}

// SubscribeRecent streams the owner's recent-conversation index.
func (d *Dispatcher) SubscribeRecent(ctx context.Context, owner string) <-chan RecentEvent {
	events := make(chan RecentEvent, 16)

	go func() {
		defer close(events)

		iter := d.client.Collection("recent_messages").Doc(owner).Collection("messages").
			OrderBy("timestamp", firestore.Asc).
			Snapshots(ctx)
		defer iter.Stop()

		for {
			snap, err := iter.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				logger.Error("Recent subscription for %s failed: %v", owner, err)
				deliverRecent(ctx, events, RecentEvent{Err: err})
				return
			}

			for _, change := range snap.Changes {
				var entry entity.RecentMessage
				if err := change.Doc.DataTo(&entry); err != nil {
					logger.Warn("Skipping malformed recent document %s: %v", change.Doc.Ref.ID, err)
					continue
				}
				entry.ID = change.Doc.Ref.ID

				if !deliverRecent(ctx, events, RecentEvent{Kind: kindOf(change.Kind), Entry: &entry}) {
					return
				}
			}
		}
	}()

	return events
}

func deliverMessage(ctx context.Context, events chan<- MessageEvent, ev MessageEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func deliverRecent(ctx context.Context, events chan<- RecentEvent, ev RecentEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func kindOf(kind firestore.DocumentChangeKind) ChangeKind {
	switch kind {
	case firestore.DocumentModified:
		return Modified
	case firestore.DocumentRemoved:
		return Removed
	default:
		return Added
	}
}

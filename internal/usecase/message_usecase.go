package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"firechat/internal/domain/entity"
	"firechat/internal/domain/repository"
	"firechat/pkg/errors"
	"firechat/pkg/logger"
)

// Names of the four fan-out writes, in pipeline order.
const (
	WriteSenderLog       = "sender_log"
	WriteSenderRecent    = "sender_recent"
	WriteRecipientLog    = "recipient_log"
	WriteRecipientRecent = "recipient_recent"
)

type MessageUseCase struct {
	messageRepo repository.MessageRepository
	recentRepo  repository.RecentMessageRepository
	userRepo    repository.UserRepository
}

func NewMessageUseCase(
	messageRepo repository.MessageRepository,
	recentRepo repository.RecentMessageRepository,
	userRepo repository.UserRepository,
) *MessageUseCase {
	return &MessageUseCase{
		messageRepo: messageRepo,
		recentRepo:  recentRepo,
		userRepo:    userRepo,
	}
}

type SendInput struct {
	ToID string
	Text string
}

// WriteOutcome is the result of one of the four fan-out writes.
type WriteOutcome struct {
	Name string `json:"name"`
	OK   bool   `json:"ok"`
	Err  string `json:"error,omitempty"`
}

type SendResult struct {
	Message  *entity.Message `json:"message"`
	Outcomes []WriteOutcome  `json:"writes"`
}

// Send fans one logical message out as four independent writes: the sender's
// log copy, the sender's recent row, the recipient's log copy and the
// recipient's recent row. Both log copies share one document id, so a retried
// send overwrites instead of duplicating. There is no rollback: writes that
// landed stay, and any failure is reported as a partial send rather than
// overall success.
func (uc *MessageUseCase) Send(ctx context.Context, fromID string, input SendInput) (*SendResult, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.BadRequest("Message text must not be empty", nil)
	}
	if fromID == input.ToID {
		return nil, errors.BadRequest("You cannot send a message to yourself", nil)
	}

	recipient, err := uc.userRepo.GetByID(ctx, input.ToID)
	if err != nil {
		logger.Warn("Send: recipient %s not found: %v", input.ToID, err)
		return nil, errors.NotFound("Recipient", err)
	}

	message := &entity.Message{
		DocumentID: uuid.New().String(),
		FromID:     fromID,
		ToID:       input.ToID,
		Text:       input.Text,
	}

	// Both recent rows carry the same denormalized payload; the peer display
	// metadata comes from the recipient profile.
	recent := &entity.RecentMessage{
		Text:            input.Text,
		Email:           recipient.Email,
		FromID:          fromID,
		ToID:            input.ToID,
		ProfileImageURL: recipient.ProfileImageURL,
		Status:          true,
	}

	result := &SendResult{Message: message}

	senderCopy := *message
	result.record(WriteSenderLog, uc.messageRepo.Append(ctx, fromID, input.ToID, &senderCopy))
	message.Timestamp = senderCopy.Timestamp

	senderRecent := *recent
	result.record(WriteSenderRecent, uc.recentRepo.Upsert(ctx, fromID, input.ToID, &senderRecent))

	recipientCopy := *message
	result.record(WriteRecipientLog, uc.messageRepo.Append(ctx, input.ToID, fromID, &recipientCopy))

	recipientRecent := *recent
	result.record(WriteRecipientRecent, uc.recentRepo.Upsert(ctx, input.ToID, fromID, &recipientRecent))

	if failed := result.failedWrites(); len(failed) > 0 {
		logger.Error("Send: partial fan-out from %s to %s, failed writes: %s", fromID, input.ToID, strings.Join(failed, ", "))
		return result, errors.PartialSend("Message delivery incomplete, failed writes: "+strings.Join(failed, ", "), nil)
	}

	return result, nil
}

// History returns the owner-side view of a conversation, oldest first.
func (uc *MessageUseCase) History(ctx context.Context, ownerID, peerID string, limit, offset int) ([]*entity.Message, int64, error) {
	if _, err := uc.userRepo.GetByID(ctx, peerID); err != nil {
		return nil, 0, errors.NotFound("Peer", err)
	}

	return uc.messageRepo.ListByConversation(ctx, ownerID, peerID, limit, offset)
}

// Recent returns the owner's recent-conversation entries, newest first.
func (uc *MessageUseCase) Recent(ctx context.Context, ownerID string) ([]*entity.RecentMessage, error) {
	return uc.recentRepo.ListByOwner(ctx, ownerID)
}

func (r *SendResult) record(name string, err error) {
	outcome := WriteOutcome{Name: name, OK: err == nil}
	if err != nil {
		outcome.Err = err.Error()
	}
	r.Outcomes = append(r.Outcomes, outcome)
}

func (r *SendResult) failedWrites() []string {
	var failed []string
	for _, o := range r.Outcomes {
		if !o.OK {
			failed = append(failed, o.Name)
		}
	}
	return failed
}

package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firechat/internal/domain/entity"
	"firechat/pkg/errors"
)

type memoryMessageRepo struct {
	mu     sync.Mutex
	logs   map[string][]*entity.Message
	failOn map[string]error
}

func newMemoryMessageRepo() *memoryMessageRepo {
	return &memoryMessageRepo{
		logs:   make(map[string][]*entity.Message),
		failOn: make(map[string]error),
	}
}

func logKey(owner, peer string) string {
	return owner + "/" + peer
}

func (r *memoryMessageRepo) Append(ctx context.Context, owner, peer string, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := logKey(owner, peer)
	if err := r.failOn[key]; err != nil {
		return err
	}

	stored := *message
	stored.Timestamp = time.Now()
	message.Timestamp = stored.Timestamp

	// Set semantics: a write to an existing id replaces the document.
	for i, existing := range r.logs[key] {
		if existing.DocumentID == stored.DocumentID {
			r.logs[key][i] = &stored
			return nil
		}
	}

	r.logs[key] = append(r.logs[key], &stored)
	return nil
}

func (r *memoryMessageRepo) ListByConversation(ctx context.Context, owner, peer string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.logs[logKey(owner, peer)]
	total := int64(len(all))

	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return append([]*entity.Message(nil), all[offset:end]...), total, nil
}

type memoryRecentRepo struct {
	mu      sync.Mutex
	entries map[string]map[string]*entity.RecentMessage
	failOn  map[string]error
}

func newMemoryRecentRepo() *memoryRecentRepo {
	return &memoryRecentRepo{
		entries: make(map[string]map[string]*entity.RecentMessage),
		failOn:  make(map[string]error),
	}
}

func (r *memoryRecentRepo) Upsert(ctx context.Context, owner, peer string, entry *entity.RecentMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.failOn[logKey(owner, peer)]; err != nil {
		return err
	}

	stored := *entry
	stored.ID = peer
	stored.Timestamp = time.Now()

	if r.entries[owner] == nil {
		r.entries[owner] = make(map[string]*entity.RecentMessage)
	}
	r.entries[owner][peer] = &stored
	return nil
}

func (r *memoryRecentRepo) ListByOwner(ctx context.Context, owner string) ([]*entity.RecentMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.RecentMessage
	for _, entry := range r.entries[owner] {
		out = append(out, entry)
	}
	return out, nil
}

func (r *memoryRecentRepo) get(owner, peer string) *entity.RecentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[owner][peer]
}

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemoryUserRepo(users ...*entity.User) *memoryUserRepo {
	repo := &memoryUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.UID] = u
	}
	return repo
}

func (r *memoryUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.UID] = user
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, uid string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[uid]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *memoryUserRepo) ListExcluding(ctx context.Context, uid string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for id, user := range r.users {
		if id != uid {
			out = append(out, user)
		}
	}
	return out, nil
}

func testUsers() (*entity.User, *entity.User) {
	alice := &entity.User{UID: "alice", Email: "alice@example.com", ProfileImageURL: "https://storage.googleapis.com/bucket/alice"}
	bob := &entity.User{UID: "bob", Email: "bob@example.com", ProfileImageURL: "https://storage.googleapis.com/bucket/bob"}
	return alice, bob
}

func newSendFixture() (*MessageUseCase, *memoryMessageRepo, *memoryRecentRepo) {
	alice, bob := testUsers()
	messageRepo := newMemoryMessageRepo()
	recentRepo := newMemoryRecentRepo()
	uc := NewMessageUseCase(messageRepo, recentRepo, newMemoryUserRepo(alice, bob))
	return uc, messageRepo, recentRepo
}

func TestSendFansOutToBothPartitions(t *testing.T) {
	uc, messageRepo, recentRepo := newSendFixture()

	result, err := uc.Send(context.Background(), "alice", SendInput{ToID: "bob", Text: "hello bob"})
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Outcomes, 4)
	for _, outcome := range result.Outcomes {
		assert.True(t, outcome.OK, "write %s should succeed", outcome.Name)
	}

	senderLog := messageRepo.logs[logKey("alice", "bob")]
	recipientLog := messageRepo.logs[logKey("bob", "alice")]
	require.Len(t, senderLog, 1)
	require.Len(t, recipientLog, 1)

	// Both copies are the same logical message under the same id.
	assert.Equal(t, senderLog[0].DocumentID, recipientLog[0].DocumentID)
	assert.Equal(t, "alice", senderLog[0].FromID)
	assert.Equal(t, "bob", senderLog[0].ToID)
	assert.Equal(t, "hello bob", senderLog[0].Text)
	assert.Equal(t, "alice", recipientLog[0].FromID)
	assert.Equal(t, "bob", recipientLog[0].ToID)

	for _, owner := range []string{"alice", "bob"} {
		peer := "bob"
		if owner == "bob" {
			peer = "alice"
		}
		row := recentRepo.get(owner, peer)
		require.NotNil(t, row, "recent row for %s missing", owner)
		assert.Equal(t, "hello bob", row.Text)
		assert.Equal(t, "bob@example.com", row.Email)
		assert.Equal(t, "alice", row.FromID)
		assert.Equal(t, "bob", row.ToID)
		assert.True(t, row.Status)
	}
}

func TestSendReportsPartialFanOut(t *testing.T) {
	uc, messageRepo, recentRepo := newSendFixture()
	messageRepo.failOn[logKey("bob", "alice")] = fmt.Errorf("rpc error: unavailable")

	result, err := uc.Send(context.Background(), "alice", SendInput{ToID: "bob", Text: "hello"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "PARTIAL_SEND"))
	assert.Contains(t, err.Error(), WriteRecipientLog)

	// The writes that landed stay: no rollback.
	require.NotNil(t, result)
	assert.Len(t, messageRepo.logs[logKey("alice", "bob")], 1)
	assert.Empty(t, messageRepo.logs[logKey("bob", "alice")])
	assert.NotNil(t, recentRepo.get("alice", "bob"))
	assert.NotNil(t, recentRepo.get("bob", "alice"))

	outcomes := map[string]bool{}
	for _, o := range result.Outcomes {
		outcomes[o.Name] = o.OK
	}
	assert.True(t, outcomes[WriteSenderLog])
	assert.True(t, outcomes[WriteSenderRecent])
	assert.False(t, outcomes[WriteRecipientLog])
	assert.True(t, outcomes[WriteRecipientRecent])
}

func TestSendRejectsEmptyText(t *testing.T) {
	uc, _, _ := newSendFixture()

	_, err := uc.Send(context.Background(), "alice", SendInput{ToID: "bob", Text: "   "})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendRejectsSelfSend(t *testing.T) {
	uc, _, _ := newSendFixture()

	_, err := uc.Send(context.Background(), "alice", SendInput{ToID: "alice", Text: "note to self"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendUnknownRecipient(t *testing.T) {
	uc, messageRepo, _ := newSendFixture()

	_, err := uc.Send(context.Background(), "alice", SendInput{ToID: "mallory", Text: "hi"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Empty(t, messageRepo.logs)
}

func TestConcurrentSendsInBothDirections(t *testing.T) {
	uc, messageRepo, _ := newSendFixture()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := uc.Send(context.Background(), "alice", SendInput{ToID: "bob", Text: "from alice"})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := uc.Send(context.Background(), "bob", SendInput{ToID: "alice", Text: "from bob"})
		assert.NoError(t, err)
	}()
	wg.Wait()

	// Each direction lands one copy in each owner's partition.
	assert.Len(t, messageRepo.logs[logKey("alice", "bob")], 2)
	assert.Len(t, messageRepo.logs[logKey("bob", "alice")], 2)
}

func TestHistoryValidatesPeer(t *testing.T) {
	uc, _, _ := newSendFixture()

	_, _, err := uc.History(context.Background(), "alice", "mallory", 50, 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestHistoryReturnsOwnerSideView(t *testing.T) {
	uc, _, _ := newSendFixture()

	for i := 0; i < 3; i++ {
		_, err := uc.Send(context.Background(), "alice", SendInput{ToID: "bob", Text: fmt.Sprintf("msg %d", i)})
		require.NoError(t, err)
	}

	messages, total, err := uc.History(context.Background(), "alice", "bob", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, messages, 2)
	assert.Equal(t, "msg 1", messages[0].Text)
	assert.Equal(t, "msg 2", messages[1].Text)
}

package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManagerRegisterAndUnregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := NewManager()
	manager.Start(ctx)

	client := NewClient("u1", nil)
	manager.Register <- client

	assert.Eventually(t, func() bool {
		return manager.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	manager.Unregister <- client

	assert.Eventually(t, func() bool {
		return manager.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestManagerTracksMultipleClientsPerUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := NewManager()
	manager.Start(ctx)

	first := NewClient("u1", nil)
	second := NewClient("u1", nil)
	manager.Register <- first
	manager.Register <- second

	assert.Eventually(t, func() bool {
		return manager.ClientCount() == 2
	}, time.Second, 10*time.Millisecond)

	manager.Unregister <- first

	assert.Eventually(t, func() bool {
		return manager.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestUnregisterLeavesSendOpen(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := NewManager()
	manager.Start(ctx)

	client := NewClient("u1", nil)
	manager.Register <- client
	manager.Unregister <- client

	assert.Eventually(t, func() bool {
		return manager.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	// The handler owns the channel lifecycle; deregistering must not close it.
	select {
	case client.Send <- []byte("still open"):
	default:
		t.Fatal("send channel should accept a buffered write after unregister")
	}
}

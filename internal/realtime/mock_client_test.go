package realtime_test

import (
	"sync"

	"nagarrakshak/backend/internal/models"
)

// MockClient is a test double for the realtime.Client interface.
type MockClient struct {
	sessionID string
	closed    bool

	mu  sync.RWMutex
	sub models.Subscription

	RecvChannel chan models.ChangeEvent
}

func newMockClient(sessionID string, buffer int) *MockClient {
	return &MockClient{
		sessionID:   sessionID,
		RecvChannel: make(chan models.ChangeEvent, buffer),
	}
}

func (c *MockClient) GetSessionID() string {
	return c.sessionID
}

func (c *MockClient) GetSubscription() models.Subscription {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sub
}

func (c *MockClient) SetSubscription(sub models.Subscription) {
	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()
}

func (c *MockClient) GetSendChannel() chan<- models.ChangeEvent {
	return c.RecvChannel
}

func (c *MockClient) Run() {}

func (c *MockClient) Close() {
	c.closed = true
}

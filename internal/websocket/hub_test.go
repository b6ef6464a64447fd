package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id       string
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id string) *mockClient {
	return &mockClient{
		id:       id,
		messages: make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, len(m.messages))
	copy(copied, m.messages)
	return copied
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1")
	client2 := newMockClient("client-2")

	hub.Register(client1)
	hub.Register(client2)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client2)
	assert.Equal(t, 0, hub.ClientCount())

	// Unregistering an unknown client is a no-op
	hub.Unregister(client1)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1")
	client2 := newMockClient("client-2")

	hub.Register(client1)
	hub.Register(client2)

	evt := TransactionCreated(map[string]interface{}{"id": float64(42)})
	hub.Broadcast(evt)

	// Give goroutines time to process
	time.Sleep(10 * time.Millisecond)

	msgs1 := client1.GetMessages()
	msgs2 := client2.GetMessages()
	require.Len(t, msgs1, 1, "client1 should receive 1 message")
	require.Len(t, msgs2, 1, "client2 should receive 1 message")

	var decoded Event
	require.NoError(t, json.Unmarshal(msgs1[0], &decoded))
	assert.Equal(t, "transaction.created", decoded.Type)
	assert.Equal(t, EntityTypeTransaction, decoded.Entity)
}

func TestHub_Broadcast_NoClients(t *testing.T) {
	hub := NewHub()

	// Should not panic with no clients registered
	hub.Broadcast(CategoryDeleted("c1"))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_Broadcast_ClosedClient(t *testing.T) {
	hub := NewHub()

	client := newMockClient("client-1")
	require.NoError(t, client.Close())
	hub.Register(client)

	// A send failure must not affect the hub
	hub.Broadcast(TransactionDeleted(map[string]interface{}{"id": float64(1)}))
	time.Sleep(10 * time.Millisecond)

	assert.Empty(t, client.GetMessages())
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHub_PublishImplementsEventPublisher(t *testing.T) {
	hub := NewHub()
	client := newMockClient("client-1")
	hub.Register(client)

	var publisher EventPublisher = hub
	publisher.Publish(CategoryCreated(map[string]interface{}{"id": "c1"}))

	time.Sleep(10 * time.Millisecond)

	msgs := client.GetMessages()
	require.Len(t, msgs, 1)

	var decoded Event
	require.NoError(t, json.Unmarshal(msgs[0], &decoded))
	assert.Equal(t, "category.created", decoded.Type)
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client := newMockClient(string(rune('a' + n)))
			hub.Register(client)
			hub.Broadcast(TransactionCreated(map[string]interface{}{"id": float64(n)}))
			hub.Unregister(client)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.ClientCount())
}

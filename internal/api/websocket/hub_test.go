package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.register <- client
	assert.Equal(t, 1, hub.ClientCount())

	hub.Broadcast([]byte(`{"stream":"stats.refresh.basketball"}`))

	select {
	case msg := <-client.send:
		assert.JSONEq(t, `{"stream":"stats.refresh.basketball"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached the client")
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.register <- client
	require.Equal(t, 1, hub.ClientCount())

	hub.unregister <- client
	assert.Equal(t, 0, hub.ClientCount())

	_, open := <-client.send
	assert.False(t, open)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- slow
	require.Equal(t, 1, hub.ClientCount())

	// Nothing reads from the slow client's channel, so the broadcast cannot
	// be delivered and the hub evicts it.
	hub.Broadcast([]byte("update"))

	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}

package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBroadcastToScopedToUserFeed(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alice := NewClient(hub, nil, "u1")
	bob := NewClient(hub, nil, "u2")
	hub.Register <- alice
	hub.Register <- bob

	hub.BroadcastTo("u1", []byte("shelf update"))

	select {
	case msg := <-alice.Send:
		assert.Equal(t, "shelf update", string(msg))
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the message")
	}
	assert.Empty(t, bob.Send, "other feeds must not receive the message")
}

func TestBroadcastToConcurrentWithClientChurn(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	subscriber := NewClient(hub, nil, "u1")
	hub.Register <- subscriber

	// Drain the subscriber so no delivery is dropped for a full buffer.
	received := make(chan int)
	go func() {
		n := 0
		for range subscriber.Send {
			n++
		}
		received <- n
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			hub.BroadcastTo("u1", []byte("event"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			c := NewClient(hub, nil, "u2")
			hub.Register <- c
			hub.Unregister <- c
		}
	}()
	wg.Wait()

	// Closes the subscriber's Send channel and ends the drain goroutine.
	hub.Unregister <- subscriber
	assert.Equal(t, 500, <-received)
}

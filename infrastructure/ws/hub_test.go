package ws

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient is a connection without a socket; tests read its buffer.
func testClient(userId string) *UserClient {
	return &UserClient{
		Id:     userId + "-conn",
		UserId: userId,
		send:   make(chan []byte, 8),
		rooms:  make(map[string]struct{}),
		logger: zerolog.Nop(),
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	return hub
}

func receive(t *testing.T, c *UserClient) string {
	t.Helper()
	select {
	case msg := <-c.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatalf("%s received nothing", c.UserId)
		return ""
	}
}

func assertNothing(t *testing.T, c *UserClient) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Fatalf("%s unexpectedly received %q", c.UserId, msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_PublishReachesRoomMembersOnly(t *testing.T) {
	hub := startHub(t)
	c1 := testClient("c1")
	a1 := testClient("a1")
	c2 := testClient("c2")
	for _, c := range []*UserClient{c1, a1, c2} {
		hub.RegisterClient(c)
	}

	hub.Join(c1, "cust_c1__admin")
	hub.Join(a1, "cust_c1__admin")
	hub.Join(c2, "cust_c2__admin")

	hub.PublishToRoom("cust_c1__admin", []byte("hello"))

	assert.Equal(t, "hello", receive(t, c1))
	assert.Equal(t, "hello", receive(t, a1))
	assertNothing(t, c2)
	assert.Equal(t, 2, hub.RoomSize("cust_c1__admin"))
}

func TestHub_PublishToEmptyRoomIsDropped(t *testing.T) {
	hub := startHub(t)
	assert.NotPanics(t, func() {
		hub.PublishToRoom("user_nobody", []byte("lost"))
	})
}

func TestHub_Leave(t *testing.T) {
	hub := startHub(t)
	a1 := testClient("a1")
	hub.RegisterClient(a1)

	hub.Join(a1, "cust_c1__admin")
	hub.Leave(a1, "cust_c1__admin")
	hub.Join(a1, "cust_c2__admin")

	hub.PublishToRoom("cust_c1__admin", []byte("old"))
	hub.PublishToRoom("cust_c2__admin", []byte("new"))

	assert.Equal(t, "new", receive(t, a1))
	assertNothing(t, a1)
	assert.Zero(t, hub.RoomSize("cust_c1__admin"))
}

func TestHub_UnregisterDetachesClient(t *testing.T) {
	hub := startHub(t)
	var unregistered *UserClient
	done := make(chan struct{})
	hub.SetOnClientUnregister(func(client *UserClient) error {
		unregistered = client
		close(done)
		return nil
	})

	c1 := testClient("c1")
	hub.RegisterClient(c1)
	hub.Join(c1, "user_c1")
	require.Eventually(t, func() bool { return hub.GetClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.UnregisterClient(c1)
	<-done

	assert.Same(t, c1, unregistered)
	assert.Zero(t, hub.GetClientCount())
	assert.Zero(t, hub.RoomSize("user_c1"))

	_, open := <-c1.send
	assert.False(t, open)

	// late publishes and joins must not touch the closed buffer
	assert.NotPanics(t, func() {
		hub.Join(c1, "user_c1")
		hub.PublishToRoom("user_c1", []byte("late"))
		hub.SendToClient(c1, []byte("late"))
	})
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := startHub(t)
	slow := testClient("slow")
	slow.send = make(chan []byte, 1)
	hub.RegisterClient(slow)
	hub.Join(slow, "admins")

	hub.PublishToRoom("admins", []byte("first"))
	hub.PublishToRoom("admins", []byte("second"))

	assert.Equal(t, "first", receive(t, slow))
	assertNothing(t, slow)
}

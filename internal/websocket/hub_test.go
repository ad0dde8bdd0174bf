package websocket

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

func receive(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case msg := <-c.Send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return ""
	}
}

func assertNothingQueued(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected message delivered: %s", msg)
	default:
	}
}

func TestBroadcastToUser_ReachesOnlyThatUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alice := NewClient(hub, nil, "alice", []string{models.RoleTeacher})
	aliceSecond := NewClient(hub, nil, "alice", []string{models.RoleTeacher})
	bob := NewClient(hub, nil, "bob", []string{models.RoleStudent})
	hub.Register <- alice
	hub.Register <- aliceSecond
	hub.Register <- bob

	hub.BroadcastToUser("alice", []byte("for alice"))

	assert.Equal(t, "for alice", receive(t, alice))
	assert.Equal(t, "for alice", receive(t, aliceSecond), "every connection of the user gets the message")
	assertNothingQueued(t, bob)
}

func TestBroadcastToRole_ReachesOnlyThatRole(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	teacher := NewClient(hub, nil, "alice", []string{models.RoleTeacher})
	student := NewClient(hub, nil, "bob", []string{models.RoleStudent})
	hub.Register <- teacher
	hub.Register <- student

	hub.BroadcastToRole(models.RoleTeacher, []byte("staff only"))

	assert.Equal(t, "staff only", receive(t, teacher))
	assertNothingQueued(t, student)
}

func TestBroadcast_ReachesEveryone(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	teacher := NewClient(hub, nil, "alice", []string{models.RoleTeacher})
	student := NewClient(hub, nil, "bob", []string{models.RoleStudent})
	hub.Register <- teacher
	hub.Register <- student

	hub.Broadcast <- []byte("everyone")

	assert.Equal(t, "everyone", receive(t, teacher))
	assert.Equal(t, "everyone", receive(t, student))
}

// Targeted sends run on request goroutines while Run owns the client maps;
// registering and sending concurrently must be safe under -race.
func TestHub_ConcurrentRegisterAndTargetedSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	const n = 500

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			hub.Register <- NewClient(hub, nil, fmt.Sprintf("user-%d", i), []string{models.RoleStudent})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			hub.BroadcastToUser(fmt.Sprintf("user-%d", i), []byte("ping"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			hub.BroadcastToRole(models.RoleStudent, []byte("ping"))
		}
	}()
	wg.Wait()
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, "alice", nil)
	hub.Register <- client
	hub.Unregister <- client

	// The hub closes Send on unregister; a closed channel reads immediately.
	_, open := <-client.Send
	assert.False(t, open)

	hub.BroadcastToUser("alice", []byte("late"))
}

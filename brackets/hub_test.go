package brackets

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(nil)
	go h.Run(ctx)
	return h
}

func recvMessage(t *testing.T, ch <-chan []byte) WebSocketMessage {
	t.Helper()
	select {
	case raw, ok := <-ch:
		require.True(t, ok, "send channel closed unexpectedly")
		var msg WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message")
		return WebSocketMessage{}
	}
}

func TestHub_BroadcastReachesOnlyRoomMembers(t *testing.T) {
	h := startHub(t)
	room := RoomID("abc")

	watcher := &Client{Hub: h, Send: make(chan []byte, 4), Room: room}
	other := &Client{Hub: h, Send: make(chan []byte, 4), Room: RoomID("xyz")}
	require.NoError(t, h.Join(watcher, nil))
	require.NoError(t, h.Join(other, nil))
	require.Equal(t, 1, h.RoomSize(room))

	h.BroadcastToRoom(room, WebSocketMessage{Type: MessageMatchUpdated, Payload: map[string]int{"version": 3}})

	msg := recvMessage(t, watcher.Send)
	assert.Equal(t, MessageMatchUpdated, msg.Type)
	assert.Equal(t, room, msg.RoomID)
	assert.Empty(t, other.Send)
}

func TestHub_UnregisterClosesSendAndEmptiesRoom(t *testing.T) {
	h := startHub(t)
	room := RoomID("abc")
	c := &Client{Hub: h, Send: make(chan []byte, 1), Room: room}

	require.NoError(t, h.Join(c, nil))
	h.Leave(c)

	require.Eventually(t, func() bool { return h.RoomSize(room) == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-c.Send
	assert.False(t, ok)
}

func TestHub_FullClientIsSkipped(t *testing.T) {
	h := startHub(t)
	room := RoomID("slow")
	c := &Client{Hub: h, Send: make(chan []byte, 1), Room: room}
	require.NoError(t, h.Join(c, nil))

	h.BroadcastToRoom(room, WebSocketMessage{Type: MessageMatchUpdated})
	h.BroadcastToRoom(room, WebSocketMessage{Type: MessageChampionCrowned})

	assert.Len(t, c.Send, 1)
	assert.Equal(t, MessageMatchUpdated, recvMessage(t, c.Send).Type)
}

func TestHub_CloseRoom(t *testing.T) {
	h := startHub(t)
	room := RoomID("gone")
	c1 := &Client{Hub: h, Send: make(chan []byte, 1), Room: room}
	c2 := &Client{Hub: h, Send: make(chan []byte, 1), Room: room}
	require.NoError(t, h.Join(c1, nil))
	require.NoError(t, h.Join(c2, nil))
	require.Equal(t, 2, h.RoomSize(room))

	h.CloseRoom(room)

	assert.Equal(t, 0, h.RoomSize(room))
	assert.True(t, c1.IsClosed)
	assert.True(t, c2.IsClosed)
}

func TestHub_JoinQueuesInitialBeforeBroadcasts(t *testing.T) {
	h := startHub(t)
	room := RoomID("abc")
	c := &Client{Hub: h, Send: make(chan []byte, 4), Room: room}

	require.NoError(t, h.Join(c, &WebSocketMessage{Type: MessageMatchUpdated, Payload: map[string]int{"version": 1}}))
	h.BroadcastToRoom(room, WebSocketMessage{Type: MessageChampionCrowned})

	first := recvMessage(t, c.Send)
	assert.Equal(t, MessageMatchUpdated, first.Type)
	assert.Equal(t, room, first.RoomID)
	assert.Equal(t, MessageChampionCrowned, recvMessage(t, c.Send).Type)
}

func TestHub_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil)
	go h.Run(ctx)

	room := RoomID("abc")
	c := &Client{Hub: h, Send: make(chan []byte, 1), Room: room}
	require.NoError(t, h.Join(c, nil))

	cancel()
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatalf("hub did not stop")
	}

	_, ok := <-c.Send
	assert.False(t, ok)
	assert.Equal(t, 0, h.RoomSize(room))
	assert.ErrorIs(t, h.Join(&Client{Hub: h, Send: make(chan []byte, 1), Room: room}, nil), ErrHubClosed)

	left := make(chan struct{})
	go func() {
		h.Leave(c)
		close(left)
	}()
	select {
	case <-left:
	case <-time.After(time.Second):
		t.Fatalf("Leave blocked after the hub stopped")
	}
}

package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe()
	b := hub.Subscribe()

	hub.Broadcast()

	require.Len(t, a, 1)
	require.Len(t, b, 1)
}

func TestHubCoalescesBursts(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()

	hub.Broadcast()
	hub.Broadcast()
	hub.Broadcast()

	// A slow subscriber keeps a single pending signal; one reload covers all.
	assert.Len(t, sub, 1)
	<-sub
	assert.Len(t, sub, 0)
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()
	hub.Unsubscribe(sub)

	hub.Broadcast()
	assert.Len(t, sub, 0)
}

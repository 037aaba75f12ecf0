package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_CreatesLookupStream(t *testing.T) {
	t.Parallel()
	h := New()
	defer h.Close()

	assert.True(t, h.Server.StreamExists(LookupStream))
	assert.False(t, h.Server.AutoReplay)
}

func TestSessions_TracksSubscribers(t *testing.T) {
	t.Parallel()
	h := New()
	defer h.Close()

	h.Server.OnSubscribe(LookupStream, nil)
	h.Server.OnSubscribe(LookupStream, nil)
	h.Server.OnUnsubscribe(LookupStream, nil)

	assert.Equal(t, Sessions{SessionsSeen: 2, ActiveSessions: 1}, h.Sessions())
}

func TestPublish_WithoutSubscribers(t *testing.T) {
	t.Parallel()
	h := New()
	defer h.Close()

	assert.NotPanics(t, func() {
		h.Publish(LookupStream, "1", []byte(`{"query":"bebop"}`))
	})
}

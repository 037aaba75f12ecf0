package events

import (
	"sync/atomic"

	"github.com/r3labs/sse/v2"
)

const (
	LookupStream = "lookups"
)

type Sessions struct {
	SessionsSeen   int64 `json:"sessions_seen"`
	ActiveSessions int64 `json:"active_sessions"`
}

// Hub wraps the SSE server and keeps a rough count of who is watching.
type Hub struct {
	Server *sse.Server

	seen   atomic.Int64
	active atomic.Int64
}

func New() *Hub {
	hub := &Hub{}
	server := sse.New()
	server.AutoReplay = false
	server.OnSubscribe = func(streamID string, sub *sse.Subscriber) {
		hub.seen.Add(1)
		hub.active.Add(1)
	}
	server.OnUnsubscribe = func(streamID string, sub *sse.Subscriber) {
		hub.active.Add(-1)
	}
	server.CreateStream(LookupStream)
	hub.Server = server
	return hub
}

func (h *Hub) Publish(stream string, id string, data []byte) {
	h.Server.Publish(stream, &sse.Event{ID: []byte(id), Data: data})
}

func (h *Hub) Sessions() Sessions {
	return Sessions{SessionsSeen: h.seen.Load(), ActiveSessions: h.active.Load()}
}

func (h *Hub) Close() {
	h.Server.Close()
}

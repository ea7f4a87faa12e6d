package server

import (
	"context"

	"medconnect/internal/events"
	"medconnect/internal/notifications"
)

// hubPublisher delivers events straight to this instance's websocket clients.
// It stands in for the Redis relay when Redis is not configured.
type hubPublisher struct {
	hub *notifications.Hub
}

func (p hubPublisher) Publish(_ context.Context, e events.Event) error {
	payload, err := e.Encode()
	if err != nil {
		return err
	}
	p.hub.BroadcastAll(string(payload))
	return nil
}

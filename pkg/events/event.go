package events

import (
	"context"
	"time"
)

const (
	TypeUserRegistered   = "user.registered"
	TypeDocumentIngested = "document.ingested"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the dotted event code, e.g. "user.registered".
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to whatever bus is configured.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewUserRegistered(userId, username string) Event {
	return BaseEvent{
		Type:       TypeUserRegistered,
		Data:       map[string]interface{}{"user_id": userId, "username": username},
		OccurredAt: time.Now(),
	}
}

func NewDocumentIngested(source string, pages, chunks, upserted int) Event {
	return BaseEvent{
		Type: TypeDocumentIngested,
		Data: map[string]interface{}{
			"source":   source,
			"pages":    pages,
			"chunks":   chunks,
			"upserted": upserted,
		},
		OccurredAt: time.Now(),
	}
}

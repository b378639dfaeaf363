package events

import (
	"context"
	"time"
)

// Type names a change to one of the record stores.
type Type string

const (
	RiderRegistered  Type = "rider.registered"
	RiderUpdated     Type = "rider.updated"
	RiderRemoved     Type = "rider.removed"
	DriverRegistered Type = "driver.registered"
	DriverUpdated    Type = "driver.updated"
	RideRegistered   Type = "ride.registered"
	RideRequested    Type = "ride.requested"
	RideUpdated      Type = "ride.updated"
	RideRemoved      Type = "ride.removed"
)

// Event describes one change to a record store.
type Event struct {
	Type Type `json:"type"`
	// Key is the identity value the change was addressed by (address, name or ride id).
	Key        string    `json:"key"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New builds an event stamped with the current time.
func New(typ Type, key string, payload any) Event {
	return Event{Type: typ, Key: key, Payload: payload, OccurredAt: time.Now().UTC()}
}

// Publisher delivers change events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }

func (NopPublisher) Close() error { return nil }

package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

func TestNew_StampsTime(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC()
	e := New(RideRequested, "", map[string]string{"pickup": "X"})

	if e.Type != RideRequested {
		t.Errorf("expected type %s, got %s", RideRequested, e.Type)
	}
	if e.OccurredAt.Before(before) {
		t.Errorf("expected timestamp after %v, got %v", before, e.OccurredAt)
	}
}

func TestEvent_JSONShape(t *testing.T) {
	t.Parallel()

	e := Event{Type: DriverUpdated, Key: "Kelsey", OccurredAt: time.Unix(0, 0).UTC()}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded["type"] != "driver.updated" || decoded["key"] != "Kelsey" {
		t.Errorf("unexpected encoding: %s", b)
	}
	if _, ok := decoded["payload"]; ok {
		t.Errorf("expected empty payload to be omitted: %s", b)
	}
}

func TestNopPublisher(t *testing.T) {
	t.Parallel()

	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), New(RiderRemoved, "addr", nil)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewKafkaPublisher_PartitionsByKey(t *testing.T) {
	t.Parallel()

	p := NewKafkaPublisher([]string{"localhost:9092"}, "rideshare-events")
	defer p.Close()

	if _, ok := p.writer.Balancer.(*kafka.Hash); !ok {
		t.Errorf("expected hash balancer, got %T", p.writer.Balancer)
	}
}

package events

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventWorkshopCreated, StatusChangeEvent{EntityID: 7, ActorID: 2})

	if event.ID == "" {
		t.Error("event ID should not be empty")
	}
	if event.Type != "workshop.created" {
		t.Errorf("unexpected type %s", event.Type)
	}
	if event.Source != "marketplace-service" {
		t.Errorf("unexpected source %s", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("unexpected version %s", event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}

	data, ok := event.Data.(StatusChangeEvent)
	if !ok {
		t.Fatalf("unexpected data type %T", event.Data)
	}
	if data.EntityID != 7 {
		t.Errorf("unexpected entity id %d", data.EntityID)
	}
}

func TestGoChannelEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewGoChannelEventPublisher(logger)
	defer publisher.Close()

	// Publishing without subscribers must not block or fail, the stream is
	// best-effort from the service's point of view
	event := NewEvent(EventRegistrationCreated, RegistrationEvent{RegistrationID: 1, UserID: 2, WorkshopID: 3, Status: "confirmed"})
	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
}

func TestMockEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	if err := publisher.Publish(ctx, NewEvent(EventUserRegistered, AccountEvent{UserID: 1})); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if err := publisher.Publish(ctx, NewEvent(EventUserDeleted, AccountEvent{UserID: 1})); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 {
		t.Fatalf("expected 2 events, got %d", len(published))
	}
	if published[0].Type != EventUserRegistered || published[1].Type != EventUserDeleted {
		t.Errorf("events out of order: %s, %s", published[0].Type, published[1].Type)
	}

	publisher.ClearEvents()
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("expected no events after clear")
	}
}

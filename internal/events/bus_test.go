package events

import (
	"context"
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(nil, nil)
	defer func() { _ = bus.Close() }()

	ch := bus.Subscribe(TypeEntryAdded, 4)

	e := EntryAdded{
		BaseEvent: NewBaseEvent(TypeEntryAdded, "entry", 1),
		EntryID:   1,
		Kind:      "movie",
		Title:     "Example Media",
		Year:      2020,
	}
	if err := bus.Publish(context.Background(), e); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case got := <-ch:
		added, ok := got.(EntryAdded)
		if !ok {
			t.Fatalf("event type = %T, want EntryAdded", got)
		}
		if added.Title != "Example Media" {
			t.Errorf("Title = %q", added.Title)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_TypeFiltering(t *testing.T) {
	bus := NewBus(nil, nil)
	defer func() { _ = bus.Close() }()

	ch := bus.Subscribe(TypeVideoAdded, 4)

	e := SyncStarted{BaseEvent: NewBaseEvent(TypeSyncStarted, "sync", 0)}
	if err := bus.Publish(context.Background(), e); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case got := <-ch:
		t.Errorf("subscriber for %s received %s", TypeVideoAdded, got.EventType())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus(nil, nil)
	defer func() { _ = bus.Close() }()

	ch := bus.SubscribeAll(4)

	events := []Event{
		SyncStarted{BaseEvent: NewBaseEvent(TypeSyncStarted, "sync", 0)},
		VideoRemoved{BaseEvent: NewBaseEvent(TypeVideoRemoved, "video", 0), Hashes: []string{"a"}},
	}
	for _, e := range events {
		if err := bus.Publish(context.Background(), e); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	for i := range events {
		select {
		case got := <-ch:
			if got.EventType() != events[i].EventType() {
				t.Errorf("event %d type = %s, want %s", i, got.EventType(), events[i].EventType())
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestBus_FullChannelDropsEvent(t *testing.T) {
	bus := NewBus(nil, nil)
	defer func() { _ = bus.Close() }()

	ch := bus.Subscribe(TypeSyncStarted, 1)

	for i := 0; i < 3; i++ {
		e := SyncStarted{BaseEvent: NewBaseEvent(TypeSyncStarted, "sync", int64(i))}
		if err := bus.Publish(context.Background(), e); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	// Only the first event fits; publishing never blocked.
	got := <-ch
	if got.EntityID() != 0 {
		t.Errorf("EntityID = %d, want 0", got.EntityID())
	}
	select {
	case e := <-ch:
		t.Errorf("unexpected buffered event %v", e)
	default:
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(nil, nil)
	ch := bus.Subscribe(TypeSyncStarted, 1)
	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Channel is closed, publish is a no-op.
	if _, ok := <-ch; ok {
		t.Error("channel should be closed")
	}
	e := SyncStarted{BaseEvent: NewBaseEvent(TypeSyncStarted, "sync", 0)}
	if err := bus.Publish(context.Background(), e); err != nil {
		t.Errorf("Publish after close: %v", err)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil, nil)
	defer func() { _ = bus.Close() }()

	ch := bus.Subscribe(TypeSyncStarted, 1)
	bus.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("unsubscribed channel should be closed")
	}
}

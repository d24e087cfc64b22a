package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

type collectSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *collectSink) Emit(_ context.Context, event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *collectSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type blockingSink struct {
	release chan struct{}
	first   chan struct{}
	once    sync.Once
}

func (s *blockingSink) Emit(_ context.Context, _ Event) {
	s.once.Do(func() { close(s.first) })
	<-s.release
}

func TestDisabledDispatcherIsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, &collectSink{})
	if d != nil {
		t.Fatal("expected nil dispatcher when disabled")
	}

	// Nil-safe methods.
	d.Emit(context.Background(), Event{EventType: "x"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("expected zero dropped from nil dispatcher")
	}
}

func TestDispatcherDeliversAndDrainsOnClose(t *testing.T) {
	sink := &collectSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 16, DropIfFull: true}, sink)

	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), Event{EventType: "login_failure", Username: "alice"})
	}
	d.Close()

	if sink.len() != 5 {
		t.Fatalf("expected 5 delivered events, got %d", sink.len())
	}
	if d.Dropped() != 0 {
		t.Fatalf("expected no drops, got %d", d.Dropped())
	}
}

func TestDispatcherDropsUnderBackpressure(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{}), first: make(chan struct{})}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// First event occupies the worker.
	d.Emit(context.Background(), Event{EventType: "e1"})
	select {
	case <-sink.first:
	case <-time.After(time.Second):
		t.Fatal("worker never picked up first event")
	}

	// Second fills the buffer, third must drop.
	d.Emit(context.Background(), Event{EventType: "e2"})
	d.Emit(context.Background(), Event{EventType: "e3"})

	if d.Dropped() != 1 {
		t.Fatalf("expected 1 dropped event, got %d", d.Dropped())
	}

	close(sink.release)
	d.Close()
}

func TestDispatcherBlockingModeHonorsContext(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{}), first: make(chan struct{})}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: false}, sink)

	d.Emit(context.Background(), Event{EventType: "e1"})
	<-sink.first
	d.Emit(context.Background(), Event{EventType: "e2"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		d.Emit(ctx, Event{EventType: "e3"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("blocking Emit did not respect context cancellation")
	}

	close(sink.release)
	d.Close()
}

func TestJSONWriterSinkWritesLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), Event{
		Timestamp: time.Now(),
		EventType: "login_success",
		Username:  "alice",
		UserID:    1,
		Success:   true,
	})

	line := strings.TrimSpace(buf.String())
	var decoded Event
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("expected valid JSON line, got %v: %q", err, line)
	}
	if decoded.EventType != "login_success" || decoded.Username != "alice" {
		t.Fatalf("unexpected decoded event %+v", decoded)
	}
}

func TestChannelSinkDelivers(t *testing.T) {
	sink := NewChannelSink(4)
	sink.Emit(context.Background(), Event{EventType: "logout"})

	select {
	case event := <-sink.Events():
		if event.EventType != "logout" {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("expected buffered event")
	}
}

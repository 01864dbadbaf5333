package scheduler

import (
	"fmt"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Event{ID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{ID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
	if engine.Pending("sooner") || engine.Len() != 0 {
		t.Fatalf("expected fired events to leave the queue, len=%d", engine.Len())
	}
}

func TestEngineCancelPreventsDelivery(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Event{ID: "cancelled", TriggerAt: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule cancelled: %v", err)
	}
	if err := engine.Schedule(Event{ID: "kept", TriggerAt: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule kept: %v", err)
	}
	if !engine.Cancel("cancelled") {
		t.Fatal("expected cancel to find pending event")
	}
	if engine.Cancel("cancelled") {
		t.Fatal("expected second cancel to report unknown id")
	}

	got := waitEvent(t, engine.C(), time.Second)
	if got.ID != "kept" {
		t.Fatalf("expected only kept event, got %s", got.ID)
	}
	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected extra event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEngineCancelAfterFireReportsFalse(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	if err := engine.Schedule(Event{ID: "fast", TriggerAt: time.Now()}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	waitEvent(t, engine.C(), time.Second)
	if engine.Cancel("fast") {
		t.Fatal("expected cancel of fired event to report false")
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Event{
			ID:        fmt.Sprintf("evt-%d", i),
			TriggerAt: now,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidation(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
	if err := engine.Schedule(Event{TriggerAt: time.Now()}); err != ErrMissingID {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if err := engine.Schedule(Event{ID: "dup", TriggerAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(Event{ID: "dup", TriggerAt: time.Now().Add(time.Hour)}); err != ErrDuplicateID {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	engine.Stop()
	if err := engine.Schedule(Event{ID: "late", TriggerAt: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}

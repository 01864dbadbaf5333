package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestEngineStressConcurrentScheduleAndCancel(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 200

	now := time.Now()
	var wg sync.WaitGroup
	var cancelled sync.Map
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				delay := time.Duration((w+i)%50+40) * time.Millisecond
				ev := Event{
					ID:        fmt.Sprintf("w%d-%d", w, i),
					Title:     "reminder",
					TriggerAt: now.Add(delay),
				}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("schedule failed: %v", err)
					return
				}
				if i%4 == 0 && engine.Cancel(ev.ID) {
					cancelled.Store(ev.ID, true)
				}
			}
		}()
	}
	wg.Wait()

	cancelledCount := 0
	cancelled.Range(func(_, _ any) bool {
		cancelledCount++
		return true
	})
	total := workers*perWorker - cancelledCount

	deadline := time.After(5 * time.Second)
	received := 0
	for received < total {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting events: received=%d total=%d dropped=%d", received, total, engine.Dropped())
		case ev := <-engine.C():
			if _, wasCancelled := cancelled.Load(ev.ID); wasCancelled {
				t.Fatalf("cancelled event delivered: %s", ev.ID)
			}
			received++
		}
	}

	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
}

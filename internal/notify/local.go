package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskly/internal/logfields"
	"github.com/sandeepkv93/taskly/internal/scheduler"
)

var (
	ErrUnknownHandle   = errors.New("notify: unknown notification handle")
	ErrInvalidInterval = errors.New("notify: interval must be positive")
)

// Scheduler is the OS-level notification scheduler: one-shot notifications
// triggered after a delay, cancellable by the handle returned on scheduling.
type Scheduler interface {
	ScheduleOneShot(ctx context.Context, after time.Duration, c Content) (string, error)
	Cancel(ctx context.Context, handle string) error
}

type Delivered struct {
	Handle string
	Content
	At time.Time
}

// LocalScheduler keeps pending notifications in a scheduler.Engine and hands
// them to a DesktopNotifier when they fire. Run must be running for delivery.
type LocalScheduler struct {
	engine    *scheduler.Engine
	notifier  DesktopNotifier
	delivered chan Delivered
	newID     func() string
	now       func() time.Time
}

func NewLocalScheduler(engine *scheduler.Engine, notifier DesktopNotifier, buffer int) *LocalScheduler {
	if notifier == nil {
		notifier = NoopDesktopNotifier{}
	}
	if buffer <= 0 {
		buffer = 1
	}
	return &LocalScheduler{
		engine:    engine,
		notifier:  notifier,
		delivered: make(chan Delivered, buffer),
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

func (s *LocalScheduler) ScheduleOneShot(_ context.Context, after time.Duration, c Content) (string, error) {
	if after <= 0 {
		return "", ErrInvalidInterval
	}
	handle := s.newID()
	if err := s.engine.Schedule(scheduler.Event{
		ID:        handle,
		Title:     c.Title,
		Body:      c.Body,
		TriggerAt: s.now().Add(after),
	}); err != nil {
		return "", fmt.Errorf("schedule notification: %w", err)
	}
	return handle, nil
}

// Restore re-arms a notification persisted by an earlier run under the
// same handle. Deadlines already in the past are not restored.
func (s *LocalScheduler) Restore(handle string, at time.Time, c Content) error {
	if handle == "" || !at.After(s.now()) {
		return nil
	}
	if err := s.engine.Schedule(scheduler.Event{ID: handle, Title: c.Title, Body: c.Body, TriggerAt: at}); err != nil {
		if errors.Is(err, scheduler.ErrDuplicateID) {
			return nil
		}
		return fmt.Errorf("restore notification: %w", err)
	}
	return nil
}

// Cancel returns ErrUnknownHandle when nothing is pending under handle,
// which includes notifications that already fired.
func (s *LocalScheduler) Cancel(_ context.Context, handle string) error {
	if !s.engine.Cancel(handle) {
		return ErrUnknownHandle
	}
	return nil
}

// Delivered reports notifications after they were shown. Slow readers miss
// deliveries rather than blocking Run.
func (s *LocalScheduler) Delivered() <-chan Delivered {
	return s.delivered
}

func (s *LocalScheduler) Run(ctx context.Context) {
	events := s.engine.C()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			content := Content{Title: ev.Title, Body: ev.Body}
			if err := s.notifier.Send(content); err != nil {
				slog.Warn("Desktop notification failed", logfields.Handle(ev.ID), logfields.Error(err))
			}
			select {
			case s.delivered <- Delivered{Handle: ev.ID, Content: content, At: s.now()}:
			default:
			}
		}
	}
}

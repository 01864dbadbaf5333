package countdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sandeepkv93/taskly/internal/feedback"
	"github.com/sandeepkv93/taskly/internal/logfields"
	"github.com/sandeepkv93/taskly/internal/metrics"
	"github.com/sandeepkv93/taskly/internal/model"
	"github.com/sandeepkv93/taskly/internal/retry"
	"github.com/sandeepkv93/taskly/internal/storage"
)

var (
	ErrMarkDoneInFlight = errors.New("countdown: mark done already in progress")
	ErrStopped          = errors.New("countdown: controller stopped")
	ErrAlreadyStarted   = errors.New("countdown: controller already started")
)

const (
	DefaultInterval     = 10 * time.Second
	DefaultTickInterval = time.Second
)

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseIdle    Phase = "idle"
	PhaseOverdue Phase = "overdue"
)

type Store interface {
	Load(ctx context.Context) (model.CountdownState, error)
	Save(ctx context.Context, state model.CountdownState) error
}

type Reconciler interface {
	Reconcile(ctx context.Context, previous string, interval time.Duration) string
}

// Snapshot is what a tick publishes.
type Snapshot struct {
	Phase  Phase
	Status model.CountdownStatus
	State  model.CountdownState
	At     time.Time
}

type Config struct {
	Interval     time.Duration
	TickInterval time.Duration
	SavePolicy   retry.Policy
}

func DefaultConfig() Config {
	return Config{
		Interval:     DefaultInterval,
		TickInterval: DefaultTickInterval,
		SavePolicy:   retry.DefaultPolicy(),
	}
}

// Controller owns the countdown: the periodic tick, the mark-done action and
// persistence of the completion history. It is bound to one screen lifetime:
// Start once, Stop once.
type Controller struct {
	store      Store
	reconciler Reconciler
	haptics    feedback.Haptics
	celebrator feedback.Celebrator
	recorder   metrics.Recorder
	cfg        Config
	now        func() time.Time

	mu      sync.Mutex
	state   *model.CountdownState
	last    Snapshot
	started bool
	stopped bool
	cron    gocron.Scheduler
	updates chan Snapshot

	marking atomic.Bool
}

type Option func(*Controller)

func WithFeedback(h feedback.Haptics, c feedback.Celebrator) Option {
	return func(ctl *Controller) {
		if h != nil {
			ctl.haptics = h
		}
		if c != nil {
			ctl.celebrator = c
		}
	}
}

func WithRecorder(r metrics.Recorder) Option {
	return func(ctl *Controller) {
		if r != nil {
			ctl.recorder = r
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(ctl *Controller) {
		if now != nil {
			ctl.now = now
		}
	}
}

func NewController(store Store, reconciler Reconciler, cfg Config, opts ...Option) *Controller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	c := &Controller{
		store:      store,
		reconciler: reconciler,
		haptics:    feedback.Noop{},
		celebrator: feedback.Noop{},
		recorder:   metrics.NoopRecorder{},
		cfg:        cfg,
		now:        time.Now,
		updates:    make(chan Snapshot, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.last = Snapshot{Phase: PhaseLoading, At: c.now()}
	return c
}

func (c *Controller) Interval() time.Duration { return c.cfg.Interval }

// Updates carries the latest snapshot. Only the newest unread snapshot is
// kept; the channel is closed by Stop.
func (c *Controller) Updates() <-chan Snapshot {
	return c.updates
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// State returns the in-memory state and whether it has been loaded or set.
func (c *Controller) State() (model.CountdownState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return model.CountdownState{}, false
	}
	return *c.state, true
}

// Load reads the persisted state once. A missing record is a first run. Any
// other failure is logged and the countdown starts as never completed; the
// error is still returned so the caller can surface it.
func (c *Controller) Load(ctx context.Context) error {
	state, err := c.store.Load(ctx)
	var loadErr error
	if err != nil {
		state = model.CountdownState{CompletedAt: []int64{}}
		if !errors.Is(err, storage.ErrNotFound) {
			c.recorder.IncStorageFailure("load")
			slog.Error("Failed to load countdown state", logfields.Key(storage.CountdownKey), logfields.Error(err))
			loadErr = fmt.Errorf("load countdown: %w", err)
		}
	} else if verr := state.Validate(); verr != nil {
		slog.Warn("Persisted countdown history out of order", logfields.Count(len(state.CompletedAt)), logfields.Error(verr))
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrStopped
	}
	// A concurrent Load may have already set the state.
	if c.state == nil {
		c.state = &state
	}
	c.mu.Unlock()

	c.Tick()
	return loadErr
}

// Start schedules the tick. The first tick runs immediately.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return ErrStopped
	}
	if c.started {
		return ErrAlreadyStarted
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create tick scheduler: %w", err)
	}
	if _, err := s.NewJob(
		gocron.DurationJob(c.cfg.TickInterval),
		gocron.NewTask(func() { c.Tick() }),
		gocron.WithName("countdown-tick"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("create tick job: %w", err)
	}
	s.Start()
	c.cron = s
	c.started = true
	slog.Debug("Countdown tick started", logfields.Interval(c.cfg.TickInterval))
	return nil
}

// Stop cancels the tick and closes Updates. Work still in flight completes
// but publishes nothing.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}
	c.stopped = true
	s := c.cron
	c.cron = nil
	c.mu.Unlock()

	var err error
	if s != nil {
		err = s.Shutdown()
	}

	c.mu.Lock()
	close(c.updates)
	c.mu.Unlock()
	return err
}

// Tick recomputes the status from the wall clock and publishes it.
func (c *Controller) Tick() Snapshot {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.computeLocked(now)
	if c.stopped {
		return snap
	}
	c.last = snap
	c.recorder.SetOverdue(snap.Phase == PhaseOverdue)
	select {
	case <-c.updates:
	default:
	}
	c.updates <- snap
	return snap
}

func (c *Controller) computeLocked(now time.Time) Snapshot {
	if c.state == nil {
		return Snapshot{Phase: PhaseLoading, At: now}
	}
	state := *c.state
	status := model.ComputeStatus(state.Deadline(c.cfg.Interval, now), now)
	phase := PhaseIdle
	if status.IsOverdue {
		phase = PhaseOverdue
	}
	return Snapshot{Phase: phase, Status: status, State: state, At: now}
}

// MarkDone records a completion and re-arms the reminder. It loads the
// persisted state first when Load has not run yet. Concurrent calls are
// rejected with ErrMarkDoneInFlight. A persistence failure after retries
// is returned alongside the new state, which stays in memory.
func (c *Controller) MarkDone(ctx context.Context) (model.CountdownState, error) {
	if !c.marking.CompareAndSwap(false, true) {
		c.recorder.ObserveMarkDone(0, metrics.ResultRejected)
		return model.CountdownState{}, ErrMarkDoneInFlight
	}
	defer c.marking.Store(false)
	started := c.now()

	// The persisted history and handle must be in memory before a new
	// completion is built on top of them.
	if _, loaded := c.State(); !loaded {
		if err := c.Load(ctx); errors.Is(err, ErrStopped) {
			return model.CountdownState{}, ErrStopped
		}
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return model.CountdownState{}, ErrStopped
	}
	previous := ""
	if c.state != nil {
		previous = c.state.CurrentNotificationID
	}
	c.mu.Unlock()

	go c.celebrator.Celebrate()
	go c.haptics.Success()

	handle := c.reconciler.Reconcile(ctx, previous, c.cfg.Interval)

	c.mu.Lock()
	base := model.CountdownState{CompletedAt: []int64{}}
	if c.state != nil {
		base = *c.state
	}
	next := base.Complete(c.now(), handle)
	c.state = &next
	stopped := c.stopped
	c.mu.Unlock()

	if !stopped {
		c.Tick()
	}

	// Persist even after Stop so the new handle is not lost.
	err := c.cfg.SavePolicy.Do(ctx, func(ctx context.Context) error {
		return c.store.Save(ctx, next)
	}, func(attempt int, err error) {
		slog.Warn("Retrying countdown save", logfields.Attempt(attempt), logfields.Error(err))
	})
	elapsed := c.now().Sub(started)
	if err != nil {
		c.recorder.IncStorageFailure("save")
		c.recorder.ObserveMarkDone(elapsed, metrics.ResultFailed)
		slog.Error("Failed to persist countdown state", logfields.Key(storage.CountdownKey), logfields.Error(err))
		return next, fmt.Errorf("persist countdown: %w", err)
	}
	c.recorder.ObserveMarkDone(elapsed, metrics.ResultSuccess)
	slog.Info("Countdown completed",
		logfields.Handle(handle),
		logfields.Count(len(next.CompletedAt)),
		logfields.DurationMS(elapsed))
	if stopped {
		return next, ErrStopped
	}
	return next, nil
}

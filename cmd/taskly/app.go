package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/sandeepkv93/taskly/internal/config"
	"github.com/sandeepkv93/taskly/internal/countdown"
	"github.com/sandeepkv93/taskly/internal/feedback"
	"github.com/sandeepkv93/taskly/internal/logfields"
	"github.com/sandeepkv93/taskly/internal/metrics"
	"github.com/sandeepkv93/taskly/internal/notify"
	"github.com/sandeepkv93/taskly/internal/retry"
	"github.com/sandeepkv93/taskly/internal/scheduler"
	"github.com/sandeepkv93/taskly/internal/shopping"
	"github.com/sandeepkv93/taskly/internal/storage"
	"github.com/sandeepkv93/taskly/internal/update"
)

// app is the wired object graph shared by every subcommand.
type app struct {
	cfg        config.RuntimeConfig
	repo       *storage.SQLiteRepository
	engine     *scheduler.Engine
	local      *notify.LocalScheduler
	controller *countdown.Controller
	shopping   *shopping.Service
	metricsSrv *http.Server

	mu      sync.Mutex
	program *tea.Program
}

func newApp(ctx context.Context, cfg config.RuntimeConfig) (*app, error) {
	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	a := &app{cfg: cfg, repo: repo}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.MetricsAddr != "" {
		pr := metrics.NewPrometheusRecorder(prom.NewRegistry())
		recorder = pr
		a.serveMetrics(pr.Handler())
	}

	var desktop notify.DesktopNotifier = notify.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		desktop = notify.ExecDesktopNotifier{}
	}
	a.engine = scheduler.NewEngine(cfg.SchedulerBuffer)
	a.engine.Start()
	a.local = notify.NewLocalScheduler(a.engine, desktop, cfg.SchedulerBuffer)
	go a.local.Run(ctx)

	mode, err := notify.ParsePermissionMode(cfg.Notifications)
	if err != nil {
		a.Close()
		return nil, err
	}
	reconciler := notify.NewReconciler(
		notify.NewStaticPermissions(mode),
		a.local,
		notify.WithDevice(cfg.IsDevice),
		notify.WithRecorder(recorder),
		notify.WithAlerter(notify.AlertFunc(func(title, message string) {
			if !a.send(update.PermissionAlertMsg{Title: title, Message: message}) {
				slog.Warn("Notification alert", logfields.Title(title), logfields.Message(message))
			}
		})),
	)

	a.controller = countdown.NewController(
		storage.NewCountdownStore(repo),
		reconciler,
		countdown.Config{
			Interval:     cfg.CountdownInterval,
			TickInterval: cfg.TickInterval,
			SavePolicy:   retry.NewPolicy(retry.BackoffFixed, 200*time.Millisecond, 2*time.Second, cfg.SaveRetries),
		},
		countdown.WithFeedback(
			feedback.NewBell(os.Stderr),
			feedback.CelebrateFunc(func() { a.send(update.CelebrateMsg{}) }),
		),
		countdown.WithRecorder(recorder),
	)
	a.shopping = shopping.NewService(
		storage.NewShoppingListStore(repo),
		shopping.WithHaptics(feedback.NewBell(os.Stderr)),
		shopping.WithRecorder(recorder),
	)
	return a, nil
}

// restoreReminder re-arms the reminder persisted by the previous run so a
// later mark-done can cancel it by handle.
func (a *app) restoreReminder() {
	state, ok := a.controller.State()
	if !ok || state.CurrentNotificationID == "" {
		return
	}
	at := state.Deadline(a.cfg.CountdownInterval, time.Now())
	if err := a.local.Restore(state.CurrentNotificationID, at, notify.DefaultContent); err != nil {
		slog.Warn("Failed to restore reminder", logfields.Handle(state.CurrentNotificationID), logfields.Error(err))
	}
}

func (a *app) serveMetrics(h http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	a.metricsSrv = &http.Server{Addr: a.cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Addr(a.cfg.MetricsAddr), logfields.Error(err))
		}
	}()
	slog.Info("Serving metrics", logfields.Addr(a.cfg.MetricsAddr))
}

func (a *app) setProgram(p *tea.Program) {
	a.mu.Lock()
	a.program = p
	a.mu.Unlock()
}

// send forwards msg to the running UI and reports whether there was one.
func (a *app) send(msg tea.Msg) bool {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()
	if p == nil {
		return false
	}
	go p.Send(msg)
	return true
}

func (a *app) Close() {
	if a.controller != nil {
		if err := a.controller.Stop(); err != nil {
			slog.Warn("Failed to stop countdown", logfields.Error(err))
		}
	}
	if a.engine != nil {
		a.engine.Stop()
	}
	if a.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = a.metricsSrv.Shutdown(ctx)
		cancel()
	}
	if err := a.repo.Close(); err != nil {
		slog.Warn("Failed to close database", logfields.Error(err))
	}
}

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/taskly/internal/config"
)

func testConfig(t *testing.T) config.RuntimeConfig {
	t.Helper()
	cfg := config.DefaultRuntimeConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "taskly.db")
	cfg.LogFile = ""
	return cfg
}

func TestMarkDoneHandleSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := newApp(ctx, cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if err := first.controller.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	state, err := first.controller.MarkDone(ctx)
	if err != nil {
		t.Fatalf("mark done: %v", err)
	}
	if state.CurrentNotificationID == "" {
		t.Fatalf("expected a scheduled reminder handle")
	}
	first.Close()

	second, err := newApp(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen app: %v", err)
	}
	defer second.Close()
	if err := second.controller.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	second.restoreReminder()
	if !second.engine.Pending(state.CurrentNotificationID) {
		t.Fatalf("expected handle %s to be re-armed", state.CurrentNotificationID)
	}

	next, err := second.controller.MarkDone(ctx)
	if err != nil {
		t.Fatalf("second mark done: %v", err)
	}
	if second.engine.Pending(state.CurrentNotificationID) {
		t.Fatalf("previous reminder should be cancelled")
	}
	if len(next.CompletedAt) != 2 {
		t.Fatalf("expected two completions, got %d", len(next.CompletedAt))
	}
}

func TestDeniedPermissionSchedulesNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Notifications = "denied"
	cfg.IsDevice = false

	a, err := newApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()
	if err := a.controller.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	state, err := a.controller.MarkDone(context.Background())
	if err != nil {
		t.Fatalf("mark done: %v", err)
	}
	if state.CurrentNotificationID != "" || a.engine.Len() != 0 {
		t.Fatalf("expected no reminder, got %q (pending %d)", state.CurrentNotificationID, a.engine.Len())
	}
}

func TestNewAppRejectsUnknownPermissionMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.Notifications = "sometimes"
	if _, err := newApp(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown permission mode")
	}
}

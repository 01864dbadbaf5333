package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskly/internal/logfields"
	"github.com/sandeepkv93/taskly/internal/update"
	"github.com/sandeepkv93/taskly/internal/views"
)

type RunCmd struct{}

func (r *RunCmd) Run(g *Globals) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, g.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	// The UI skips its own load once the controller holds state.
	loadErr := a.controller.Load(ctx)
	if loadErr != nil {
		slog.Warn("Starting countdown from scratch", logfields.Error(loadErr))
	}
	a.restoreReminder()

	m := update.NewModel(update.Deps{
		Countdown: a.controller,
		Shopping:  a.shopping,
		Delivered: a.local.Delivered(),
		Context:   ctx,
		LoadErr:   loadErr,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	a.setProgram(p)
	defer a.setProgram(nil)

	slog.Info("Starting UI", logfields.Path(g.Config.DBPath), logfields.Interval(g.Config.CountdownInterval))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

type DoneCmd struct{}

func (d *DoneCmd) Run(g *Globals) error {
	ctx := context.Background()
	a, err := newApp(ctx, g.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.controller.Load(ctx); err != nil {
		slog.Warn("Starting countdown from scratch", logfields.Error(err))
	}
	a.restoreReminder()
	state, err := a.controller.MarkDone(ctx)
	if err != nil {
		return err
	}
	next := state.Deadline(a.cfg.CountdownInterval, a.controller.Snapshot().At)
	fmt.Printf("Done. Next due at %s.\n", next.Format(views.HistoryTimeLayout))
	return nil
}

type HistoryCmd struct {
	Raw bool `help:"Print plain timestamps instead of rendered markdown"`
}

func (h *HistoryCmd) Run(g *Globals) error {
	ctx := context.Background()
	a, err := newApp(ctx, g.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.controller.Load(ctx); err != nil {
		return err
	}
	state, _ := a.controller.State()
	entries := make([]string, 0, len(state.CompletedAt))
	for _, at := range state.History() {
		entries = append(entries, at.Format(views.HistoryTimeLayout))
	}
	if h.Raw {
		for _, e := range entries {
			fmt.Println(e)
		}
		return nil
	}
	fmt.Print(views.RenderMarkdown(views.HistoryMarkdown(entries)))
	return nil
}

type ListCmd struct{}

func (l *ListCmd) Run(g *Globals) error {
	ctx := context.Background()
	a, err := newApp(ctx, g.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.shopping.Load(ctx); err != nil {
		return err
	}
	items := a.shopping.Items()
	if len(items) == 0 {
		fmt.Println("No items in the list")
		return nil
	}
	for i, item := range items {
		mark := " "
		if item.IsCompleted() {
			mark = "x"
		}
		fmt.Printf("%2d. [%s] %s\n", i+1, mark, item.Name)
	}
	return nil
}

type AddCmd struct {
	Name string `arg:"" help:"Item name"`
}

func (c *AddCmd) Run(g *Globals) error {
	ctx := context.Background()
	a, err := newApp(ctx, g.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.shopping.Load(ctx); err != nil {
		return err
	}
	item, err := a.shopping.Add(ctx, c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Added %q\n", item.Name)
	return nil
}

package update

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskly/internal/countdown"
	"github.com/sandeepkv93/taskly/internal/model"
	"github.com/sandeepkv93/taskly/internal/notify"
)

func startCountdownCmd(ctx context.Context, c Countdown) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		// The caller may already have loaded the countdown.
		var loadErr error
		if c.Snapshot().Phase == countdown.PhaseLoading {
			loadErr = c.Load(ctx)
		}
		if errors.Is(loadErr, countdown.ErrStopped) {
			return nil
		}
		startErr := c.Start(ctx)
		if errors.Is(startErr, countdown.ErrStopped) {
			startErr = nil
		}
		return CountdownLoadedMsg{Err: errors.Join(loadErr, startErr)}
	}
}

func waitForSnapshotCmd(ch <-chan countdown.Snapshot) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return SnapshotMsg{Snapshot: snap}
	}
}

func waitForDeliveredCmd(ch <-chan notify.Delivered) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDeliveredMsg{Delivered: d}
	}
}

func markDoneCmd(ctx context.Context, c Countdown) tea.Cmd {
	return func() tea.Msg {
		state, err := c.MarkDone(ctx)
		return MarkDoneResultMsg{State: state, Err: err}
	}
}

func loadShoppingCmd(ctx context.Context, s ShoppingList) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		err := s.Load(ctx)
		return ShoppingLoadedMsg{Items: s.Items(), Err: err}
	}
}

func addItemCmd(ctx context.Context, s ShoppingList, name string) tea.Cmd {
	return func() tea.Msg {
		item, err := s.Add(ctx, name)
		return ShoppingChangedMsg{Op: "add", Item: item, Items: s.Items(), Err: err}
	}
}

func toggleItemCmd(ctx context.Context, s ShoppingList, id string) tea.Cmd {
	return func() tea.Msg {
		item, err := s.ToggleComplete(ctx, id)
		return ShoppingChangedMsg{Op: "toggle", Item: item, Items: s.Items(), Err: err}
	}
}

func deleteItemCmd(ctx context.Context, s ShoppingList, item model.ShoppingItem) tea.Cmd {
	return func() tea.Msg {
		err := s.Delete(ctx, item.ID)
		return ShoppingChangedMsg{Op: "delete", Item: item, Items: s.Items(), Err: err}
	}
}

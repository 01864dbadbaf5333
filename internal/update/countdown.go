package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskly/internal/countdown"
	"github.com/sandeepkv93/taskly/internal/views"
)

func (m Model) handleCountdownKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ", "d":
		return m.startMarkDone()
	}
	return m, nil
}

// startMarkDone ignores presses while a previous mark-done is still running.
func (m Model) startMarkDone() (Model, tea.Cmd) {
	if m.countdown == nil || m.Countdown.Marking {
		return m, nil
	}
	if m.Countdown.Snapshot.Phase == countdown.PhaseLoading {
		m.Status = StatusBar{Text: "countdown still loading"}
		return m, nil
	}
	m.Countdown.Marking = true
	return m, tea.Batch(markDoneCmd(m.ctx, m.countdown), m.loadSpinner.Tick)
}

func (m Model) onMarkDoneResult(msg MarkDoneResultMsg) Model {
	m.Countdown.Marking = false
	switch {
	case errors.Is(msg.Err, countdown.ErrMarkDoneInFlight), errors.Is(msg.Err, countdown.ErrStopped):
		return m
	case msg.Err != nil && len(msg.State.CompletedAt) == 0:
		m.setError(msg.Err)
		return m
	}
	if m.countdown != nil {
		m.Countdown.Snapshot = m.countdown.Snapshot()
	}
	m.Countdown.Snapshot.State = msg.State
	if msg.Err != nil {
		m.setError(fmt.Errorf("done, but not saved: %w", msg.Err))
		return m
	}
	m.Status = StatusBar{Text: "nice, the thing is done"}
	return m
}

func (m Model) renderCountdownView() string {
	snap := m.Countdown.Snapshot
	data := views.CountdownPanelData{
		Loading:     snap.Phase == countdown.PhaseLoading,
		SpinnerView: m.loadSpinner.View(),
		Overdue:     snap.Status.IsOverdue,
		Days:        snap.Status.Distance.Days,
		Hours:       snap.Status.Distance.Hours,
		Minutes:     snap.Status.Distance.Minutes,
		Seconds:     snap.Status.Distance.Seconds,
		Reminder:    snap.State.CurrentNotificationID,
		Marking:     m.Countdown.Marking,
	}
	if m.countdown != nil {
		data.Interval = m.countdown.Interval().String()
	}
	if last, ok := snap.State.LastCompletedAt(); ok {
		data.LastCompleted = last.Format(views.HistoryTimeLayout)
	}
	return views.RenderCountdownPanel(data)
}

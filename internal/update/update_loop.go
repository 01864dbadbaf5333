package update

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskly/internal/countdown"
	"github.com/sandeepkv93/taskly/internal/logfields"
	"github.com/sandeepkv93/taskly/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadSpinner.Tick}
	if m.countdown != nil {
		cmds = append(cmds, startCountdownCmd(m.ctx, m.countdown), waitForSnapshotCmd(m.countdown.Updates()))
	}
	cmds = append(cmds, loadShoppingCmd(m.ctx, m.shopping), waitForDeliveredCmd(m.delivered))
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			return m.quit()
		}
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		if m.CurrentView == ViewShopping && (m.Shopping.Typing || m.Shopping.Confirm != nil) {
			return m.handleShoppingKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Shopping:
			return m.switchView(ViewShopping), nil
		case m.Keys.Countdown:
			return m.switchView(ViewCountdown), nil
		case m.Keys.History:
			return m.switchView(ViewHistory), nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			return m.quit()
		}
		switch m.CurrentView {
		case ViewShopping:
			return m.handleShoppingKey(typed)
		case ViewCountdown:
			return m.handleCountdownKey(typed)
		}
	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m = m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.setError(typed.Err)
		return m, nil
	case SnapshotMsg:
		m.Countdown.Snapshot = typed.Snapshot
		if m.countdown != nil {
			return m, waitForSnapshotCmd(m.countdown.Updates())
		}
		return m, nil
	case CountdownLoadedMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		if m.countdown != nil {
			m.Countdown.Snapshot = m.countdown.Snapshot()
		}
		return m, nil
	case MarkDoneResultMsg:
		return m.onMarkDoneResult(typed), nil
	case ShoppingLoadedMsg:
		m.Shopping.Loaded = true
		m.Shopping.Items = typed.Items
		m.clampShoppingCursor()
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	case ShoppingChangedMsg:
		return m.onShoppingChanged(typed), nil
	case ReminderDeliveredMsg:
		d := typed.Delivered
		m.notice("Reminder", fmt.Sprintf("%s: %s", d.Title, d.Body), levelFromError(false), d.At)
		m.Status = StatusBar{Text: fmt.Sprintf("reminder: %s", d.Title)}
		return m, waitForDeliveredCmd(m.delivered)
	case PermissionAlertMsg:
		m.notice(typed.Title, typed.Message, "warn", m.now())
		m.Status = StatusBar{Text: typed.Title, IsError: true}
		return m, nil
	case CelebrateMsg:
		m.Celebrating = true
		return m, tea.Tick(celebrationDuration, func(time.Time) tea.Msg { return celebrationDoneMsg{} })
	case celebrationDoneMsg:
		m.Celebrating = false
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	switch m.CurrentView {
	case ViewShopping:
		leftPane = m.renderShoppingView()
	case ViewCountdown:
		leftPane = m.renderCountdownView()
	case ViewHistory:
		leftPane = m.renderHistoryView()
	}
	rightPane := strings.TrimSpace(m.renderCommandPalette() + "\n" + m.renderHelpIfVisible())

	banner := ""
	if m.Celebrating {
		banner = "*** Nice work! The thing is done. ***"
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskly | view: %s", m.CurrentView),
		Tabs:         []string{string(ViewShopping), string(ViewCountdown), string(ViewHistory)},
		ActiveTab:    string(m.CurrentView),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Banner:       banner,
		Footer: fmt.Sprintf("keys: %s shopping | %s countdown | %s history | / cmd | %s help | %s quit",
			m.Keys.Shopping, m.Keys.Countdown, m.Keys.History, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) switchView(v View) Model {
	m.CurrentView = v
	if v == ViewShopping {
		m.Shopping.Typing = true
		m.shoppingInput.Focus()
	} else {
		m.Shopping.Typing = false
		m.shoppingInput.Blur()
	}
	return m
}

// quit stops the countdown before the program exits so no tick or late
// mark-done result reaches a torn down view.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	if m.countdown != nil {
		if err := m.countdown.Stop(); err != nil {
			slog.Warn("Stopping countdown failed", logfields.Error(err))
		}
	}
	return m, tea.Quit
}

func (m Model) busy() bool {
	return m.Countdown.Marking ||
		m.Countdown.Snapshot.Phase == countdown.PhaseLoading ||
		(m.shopping != nil && !m.Shopping.Loaded)
}

func (m *Model) setError(err error) {
	m.LastError = err
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notice("Error", err.Error(), levelFromError(true), m.now())
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewShopping, ViewCountdown, ViewHistory:
		return true
	default:
		return false
	}
}

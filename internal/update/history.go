package update

import "github.com/sandeepkv93/taskly/internal/views"

func (m Model) historyEntries() []string {
	history := m.Countdown.Snapshot.State.History()
	out := make([]string, 0, len(history))
	for _, at := range history {
		out = append(out, at.Format(views.HistoryTimeLayout))
	}
	return out
}

func (m Model) renderHistoryView() string {
	return views.RenderHistoryPanel(m.historyEntries())
}

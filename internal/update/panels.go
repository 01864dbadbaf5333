package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/taskly/internal/views"
)

const maxNotices = 40

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notices) == 0 {
		return ""
	}
	n := m.Notices[len(m.Notices)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notice(title, body, level string, at time.Time) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notices = append(m.Notices, Notice{Title: title, Body: body, Level: level, At: at})
	if len(m.Notices) > maxNotices {
		m.Notices = m.Notices[len(m.Notices)-maxNotices:]
	}
}

package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type Content struct {
	Title string
	Body  string
}

// DesktopNotifier shows a notification to the user right now.
type DesktopNotifier interface {
	Send(Content) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Content) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(c Content) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", c.Title, c.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(c.Body), escapeAppleScript(c.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// escapeAppleScript quotes s for an AppleScript string literal. Backslashes
// go first so the quote escapes are not doubled.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Alerter surfaces a user-facing warning, e.g. when notification permission
// is missing.
type Alerter interface {
	Alert(title, message string)
}

type AlertFunc func(title, message string)

func (f AlertFunc) Alert(title, message string) { f(title, message) }

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const HistoryTimeLayout = "Jan 2 2006, 3:04 pm"

var (
	completedItemStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	cursorStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	overdueStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
	dueStyle           = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	confirmStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

type ShoppingItemData struct {
	ID        string
	Name      string
	Completed bool
}

type ShoppingPanelData struct {
	InputView   string
	Items       []ShoppingItemData
	Cursor      int
	Confirming  string
	Loading     bool
	SpinnerView string
}

type CountdownPanelData struct {
	Loading       bool
	SpinnerView   string
	Overdue       bool
	Days          int
	Hours         int
	Minutes       int
	Seconds       int
	Interval      string
	LastCompleted string
	Reminder      string
	Marking       bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderShoppingPanel(data ShoppingPanelData) string {
	var b strings.Builder
	b.WriteString("shopping list:\n")
	b.WriteString(data.InputView + "\n")
	b.WriteString("actions: [enter]add [tab]list [space]toggle [d]delete\n\n")
	if data.Loading {
		b.WriteString(data.SpinnerView + " loading list")
		return b.String()
	}
	if len(data.Items) == 0 {
		b.WriteString("No items in the list")
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = cursorStyle.Render(">")
		}
		box := "[ ]"
		name := item.Name
		if item.Completed {
			box = "[x]"
			name = completedItemStyle.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s\n", cursor, i+1, box, name))
	}
	if data.Confirming != "" {
		b.WriteString("\n" + confirmStyle.Render(fmt.Sprintf("Delete %q? [y/n]", data.Confirming)))
	}
	return strings.TrimSpace(b.String())
}

func RenderCountdownPanel(data CountdownPanelData) string {
	if data.Loading {
		return "countdown:\n" + data.SpinnerView + " loading"
	}
	var b strings.Builder
	b.WriteString("countdown:\n")
	heading := dueStyle.Render("Thing is due in...")
	if data.Overdue {
		heading = overdueStyle.Render("Thing overdue by")
	}
	b.WriteString(heading + "\n\n")
	units := fmt.Sprintf(" %3d days  %2d hours  %2d minutes  %2d seconds ", data.Days, data.Hours, data.Minutes, data.Seconds)
	if data.Overdue {
		units = overdueStyle.Render(units)
	}
	b.WriteString(units + "\n\n")
	b.WriteString(fmt.Sprintf("interval: %s\n", data.Interval))
	if data.LastCompleted != "" {
		b.WriteString(fmt.Sprintf("last done: %s\n", data.LastCompleted))
	} else {
		b.WriteString("last done: never\n")
	}
	if data.Reminder != "" {
		b.WriteString(fmt.Sprintf("reminder: %s\n", data.Reminder))
	} else {
		b.WriteString("reminder: none scheduled\n")
	}
	if data.Marking {
		b.WriteString("\n" + data.SpinnerView + " saving...")
	} else {
		b.WriteString("\n[enter] I've done the thing!")
	}
	return strings.TrimSpace(b.String())
}

// HistoryMarkdown lists completions newest first as a markdown document.
func HistoryMarkdown(entries []string) string {
	var b strings.Builder
	b.WriteString("# History\n\n")
	if len(entries) == 0 {
		b.WriteString("No completed tasks yet\n")
		return b.String()
	}
	for _, entry := range entries {
		b.WriteString("- " + entry + "\n")
	}
	return b.String()
}

func RenderHistoryPanel(entries []string) string {
	return RenderMarkdown(HistoryMarkdown(entries))
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

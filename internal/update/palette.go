package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskly/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	parsed, err := commands.Parse(raw)
	if err != nil {
		m = m.closePalette()
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(parsed, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.shopping == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "shopping list unavailable"}
			}
			next = addItemCmd(m.ctx, m.shopping, a.Name)
			return commands.Result{Message: fmt.Sprintf("adding %s", a.Name)}, nil
		},
		Done: func() (commands.Result, error) {
			m = m.switchView(ViewCountdown)
			m, next = m.startMarkDone()
			if next == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "countdown not ready"}
			}
			return commands.Result{Message: "marking the thing done"}, nil
		},
		Toggle: func(t commands.TargetArgs) (commands.Result, error) {
			item, ok := m.findShoppingItem(t.Index, t.Name)
			if !ok || m.shopping == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no matching shopping item"}
			}
			next = toggleItemCmd(m.ctx, m.shopping, item.ID)
			return commands.Result{Message: fmt.Sprintf("toggling %s", item.Name)}, nil
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			item, ok := m.findShoppingItem(t.Index, t.Name)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no matching shopping item"}
			}
			m = m.switchView(ViewShopping)
			m.Shopping.Typing = false
			m.shoppingInput.Blur()
			m.Shopping.Cursor = indexOfItem(m.Shopping.Items, item.ID)
			m.Shopping.Confirm = &item
			return commands.Result{Message: fmt.Sprintf("delete %s? [y/n]", item.Name)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			v := viewFromName(s.View)
			m = m.switchView(v)
			return commands.Result{Message: fmt.Sprintf("showing %s", strings.ToLower(string(v)))}, nil
		},
	})
	m = m.closePalette()
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notice("Command Failed", err.Error(), "error", m.now())
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, next
}

func viewFromName(name string) View {
	switch name {
	case "shopping":
		return ViewShopping
	case "history":
		return ViewHistory
	default:
		return ViewCountdown
	}
}

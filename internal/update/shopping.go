package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskly/internal/model"
	"github.com/sandeepkv93/taskly/internal/shopping"
	"github.com/sandeepkv93/taskly/internal/views"
)

func (m Model) handleShoppingKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Shopping.Confirm != nil {
		return m.handleDeleteConfirmKey(msg)
	}
	if m.Shopping.Typing {
		return m.handleShoppingInputKey(msg)
	}

	switch msg.String() {
	case "j", "down":
		if m.Shopping.Cursor < len(m.Shopping.Items)-1 {
			m.Shopping.Cursor++
		}
	case "k", "up":
		if m.Shopping.Cursor > 0 {
			m.Shopping.Cursor--
		}
	case "a", "i", "tab":
		m.Shopping.Typing = true
		m.shoppingInput.Focus()
	case " ", "x":
		item, ok := m.currentShoppingItem()
		if !ok || m.shopping == nil {
			return m, nil
		}
		return m, toggleItemCmd(m.ctx, m.shopping, item.ID)
	case "d", "delete", "backspace":
		item, ok := m.currentShoppingItem()
		if !ok {
			return m, nil
		}
		m.Shopping.Confirm = &item
		m.Status = StatusBar{Text: fmt.Sprintf("delete %s? [y/n]", item.Name)}
	}
	return m, nil
}

func (m Model) handleShoppingInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.Shopping.Typing = false
		m.shoppingInput.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.shoppingInput.Value())
		m.shoppingInput.SetValue("")
		if name == "" || m.shopping == nil {
			return m, nil
		}
		return m, addItemCmd(m.ctx, m.shopping, name)
	}
	if msg.Type == tea.KeyRunes {
		m.shoppingInput.SetValue(m.shoppingInput.Value() + string(msg.Runes))
		return m, nil
	}
	var cmd tea.Cmd
	m.shoppingInput, cmd = m.shoppingInput.Update(msg)
	return m, cmd
}

func (m Model) handleDeleteConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	item := *m.Shopping.Confirm
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		m.Shopping.Confirm = nil
		if m.shopping == nil {
			return m, nil
		}
		return m, deleteItemCmd(m.ctx, m.shopping, item)
	case "n", "esc":
		m.Shopping.Confirm = nil
		m.Status = StatusBar{Text: "delete cancelled"}
	}
	return m, nil
}

func (m Model) onShoppingChanged(msg ShoppingChangedMsg) Model {
	m.Shopping.Items = msg.Items
	m.clampShoppingCursor()
	if msg.Err != nil {
		if errors.Is(msg.Err, shopping.ErrBlankName) {
			return m
		}
		m.setError(msg.Err)
		return m
	}
	switch msg.Op {
	case "add":
		m.Shopping.Cursor = indexOfItem(m.Shopping.Items, msg.Item.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("added %s", msg.Item.Name)}
	case "toggle":
		if msg.Item.IsCompleted() {
			m.Status = StatusBar{Text: fmt.Sprintf("got %s", msg.Item.Name)}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("%s back on the list", msg.Item.Name)}
		}
	case "delete":
		m.Status = StatusBar{Text: fmt.Sprintf("deleted %s", msg.Item.Name)}
	}
	return m
}

func (m Model) currentShoppingItem() (model.ShoppingItem, bool) {
	if m.Shopping.Cursor < 0 || m.Shopping.Cursor >= len(m.Shopping.Items) {
		return model.ShoppingItem{}, false
	}
	return m.Shopping.Items[m.Shopping.Cursor], true
}

func (m *Model) clampShoppingCursor() {
	if m.Shopping.Cursor >= len(m.Shopping.Items) {
		m.Shopping.Cursor = len(m.Shopping.Items) - 1
	}
	if m.Shopping.Cursor < 0 {
		m.Shopping.Cursor = 0
	}
}

func indexOfItem(items []model.ShoppingItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return 0
}

// findShoppingItem resolves a 1-based position or a case-insensitive name
// prefix against the displayed list.
func (m Model) findShoppingItem(index int, name string) (model.ShoppingItem, bool) {
	if index > 0 {
		if index > len(m.Shopping.Items) {
			return model.ShoppingItem{}, false
		}
		return m.Shopping.Items[index-1], true
	}
	for _, item := range m.Shopping.Items {
		if strings.HasPrefix(strings.ToLower(item.Name), name) {
			return item, true
		}
	}
	return model.ShoppingItem{}, false
}

func (m Model) renderShoppingView() string {
	items := make([]views.ShoppingItemData, 0, len(m.Shopping.Items))
	for _, item := range m.Shopping.Items {
		items = append(items, views.ShoppingItemData{ID: item.ID, Name: item.Name, Completed: item.IsCompleted()})
	}
	confirming := ""
	if m.Shopping.Confirm != nil {
		confirming = m.Shopping.Confirm.Name
	}
	cursor := m.Shopping.Cursor
	if m.Shopping.Typing {
		cursor = -1
	}
	return views.RenderShoppingPanel(views.ShoppingPanelData{
		InputView:   m.shoppingInput.View(),
		Items:       items,
		Cursor:      cursor,
		Confirming:  confirming,
		Loading:     m.shopping != nil && !m.Shopping.Loaded,
		SpinnerView: m.loadSpinner.View(),
	})
}

package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrInvalidItem = errors.New("model: invalid shopping item")

type ShoppingItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CompletedAt *int64 `json:"completedAt,omitempty"`
	UpdatedAt   int64  `json:"updatedAt"`
}

func (i ShoppingItem) IsCompleted() bool {
	return i.CompletedAt != nil
}

func (i ShoppingItem) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidItem)
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if i.UpdatedAt <= 0 {
		return fmt.Errorf("%w: updated_at is required", ErrInvalidItem)
	}
	return nil
}

// NewShoppingItem returns ok=false for blank names.
func NewShoppingItem(id, name string, now time.Time) (ShoppingItem, bool) {
	if strings.TrimSpace(name) == "" {
		return ShoppingItem{}, false
	}
	return ShoppingItem{ID: id, Name: name, UpdatedAt: now.UnixMilli()}, true
}

// ToggleShoppingItem flips the completion of the item with the given id. The
// returned slice is a fresh copy; found is false when no item matched.
func ToggleShoppingItem(items []ShoppingItem, id string, now time.Time) (out []ShoppingItem, toggled ShoppingItem, found bool) {
	out = make([]ShoppingItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if out[i].IsCompleted() {
			out[i].CompletedAt = nil
		} else {
			ms := now.UnixMilli()
			out[i].CompletedAt = &ms
		}
		out[i].UpdatedAt = now.UnixMilli()
		return out, out[i], true
	}
	return out, ShoppingItem{}, false
}

func DeleteShoppingItem(items []ShoppingItem, id string) ([]ShoppingItem, bool) {
	out := make([]ShoppingItem, 0, len(items))
	found := false
	for _, item := range items {
		if item.ID == id {
			found = true
			continue
		}
		out = append(out, item)
	}
	return out, found
}

// OrderShoppingList puts open items first (most recently updated first) and
// completed items last (most recently completed first).
func OrderShoppingList(items []ShoppingItem) []ShoppingItem {
	out := make([]ShoppingItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.IsCompleted() && b.IsCompleted():
			return *a.CompletedAt > *b.CompletedAt
		case a.IsCompleted() != b.IsCompleted():
			return !a.IsCompleted()
		default:
			return a.UpdatedAt > b.UpdatedAt
		}
	})
	return out
}

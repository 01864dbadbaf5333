package model

import (
	"errors"
	"testing"
	"time"
)

func ms(v int64) *int64 { return &v }

func TestShoppingItemValidate(t *testing.T) {
	item := ShoppingItem{ID: "1", Name: "Coffee", UpdatedAt: 10}
	if err := item.Validate(); err != nil {
		t.Fatalf("expected valid item, got %v", err)
	}
	item.Name = "   "
	if err := item.Validate(); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
}

func TestNewShoppingItemRejectsBlankName(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	if _, ok := NewShoppingItem("1", "  ", now); ok {
		t.Fatal("expected blank name to be rejected")
	}
	item, ok := NewShoppingItem("1", "Milk", now)
	if !ok || item.UpdatedAt != now.UnixMilli() || item.IsCompleted() {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestOrderShoppingList(t *testing.T) {
	items := []ShoppingItem{
		{ID: "done-old", Name: "a", CompletedAt: ms(100), UpdatedAt: 100},
		{ID: "open-old", Name: "b", UpdatedAt: 50},
		{ID: "done-new", Name: "c", CompletedAt: ms(300), UpdatedAt: 300},
		{ID: "open-new", Name: "d", UpdatedAt: 200},
	}
	got := OrderShoppingList(items)
	want := []string{"open-new", "open-old", "done-new", "done-old"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %s want %s (full: %+v)", i, got[i].ID, id, got)
		}
	}
	if items[0].ID != "done-old" {
		t.Fatal("expected input slice to be left in place")
	}
}

func TestToggleShoppingItem(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	items := []ShoppingItem{{ID: "1", Name: "Eggs", UpdatedAt: 1}}

	next, toggled, found := ToggleShoppingItem(items, "1", now)
	if !found || !toggled.IsCompleted() || *toggled.CompletedAt != now.UnixMilli() {
		t.Fatalf("expected completed item, got %+v", toggled)
	}
	if items[0].IsCompleted() {
		t.Fatal("input slice mutated")
	}

	later := now.Add(time.Minute)
	next, toggled, _ = ToggleShoppingItem(next, "1", later)
	if toggled.IsCompleted() || next[0].UpdatedAt != later.UnixMilli() {
		t.Fatalf("expected reopened item, got %+v", toggled)
	}

	if _, _, found := ToggleShoppingItem(next, "missing", later); found {
		t.Fatal("expected missing id not found")
	}
}

func TestDeleteShoppingItem(t *testing.T) {
	items := []ShoppingItem{{ID: "1"}, {ID: "2"}}
	out, found := DeleteShoppingItem(items, "1")
	if !found || len(out) != 1 || out[0].ID != "2" {
		t.Fatalf("unexpected delete result: %+v found=%v", out, found)
	}
	if _, found := DeleteShoppingItem(out, "1"); found {
		t.Fatal("expected second delete to miss")
	}
}

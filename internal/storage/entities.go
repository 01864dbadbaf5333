package storage

import "time"

const (
	CountdownKey    = "taskly-countdown"
	ShoppingListKey = "shopping-list"
)

type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

type EntryListFilter struct {
	Prefix string
	Limit  int
	Offset int
}

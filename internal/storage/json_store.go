package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandeepkv93/taskly/internal/model"
)

// JSONStore reads and writes JSON documents on top of a Repository.
type JSONStore struct {
	repo Repository
}

func NewJSONStore(repo Repository) *JSONStore {
	return &JSONStore{repo: repo}
}

// GetJSON decodes the value at key into dst. It returns ErrNotFound when the
// key was never written.
func (s *JSONStore) GetJSON(ctx context.Context, key string, dst any) error {
	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(entry.Value, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *JSONStore) SetJSON(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.repo.Set(ctx, key, payload)
}

type CountdownStore struct {
	json *JSONStore
}

func NewCountdownStore(repo Repository) *CountdownStore {
	return &CountdownStore{json: NewJSONStore(repo)}
}

// Load returns ErrNotFound on first run.
func (s *CountdownStore) Load(ctx context.Context) (model.CountdownState, error) {
	var state model.CountdownState
	if err := s.json.GetJSON(ctx, CountdownKey, &state); err != nil {
		return model.CountdownState{}, err
	}
	if state.CompletedAt == nil {
		state.CompletedAt = []int64{}
	}
	return state, nil
}

func (s *CountdownStore) Save(ctx context.Context, state model.CountdownState) error {
	if state.CompletedAt == nil {
		state.CompletedAt = []int64{}
	}
	return s.json.SetJSON(ctx, CountdownKey, state)
}

type ShoppingListStore struct {
	json *JSONStore
}

func NewShoppingListStore(repo Repository) *ShoppingListStore {
	return &ShoppingListStore{json: NewJSONStore(repo)}
}

// Load returns an empty list on first run.
func (s *ShoppingListStore) Load(ctx context.Context) ([]model.ShoppingItem, error) {
	items := make([]model.ShoppingItem, 0)
	if err := s.json.GetJSON(ctx, ShoppingListKey, &items); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []model.ShoppingItem{}, nil
		}
		return nil, err
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}
	return items, nil
}

func (s *ShoppingListStore) Save(ctx context.Context, items []model.ShoppingItem) error {
	if items == nil {
		items = []model.ShoppingItem{}
	}
	return s.json.SetJSON(ctx, ShoppingListKey, items)
}

package shopping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskly/internal/feedback"
	"github.com/sandeepkv93/taskly/internal/logfields"
	"github.com/sandeepkv93/taskly/internal/metrics"
	"github.com/sandeepkv93/taskly/internal/model"
	"github.com/sandeepkv93/taskly/internal/storage"
)

var (
	ErrBlankName    = errors.New("shopping: item name is blank")
	ErrItemNotFound = errors.New("shopping: item not found")
)

type Store interface {
	Load(ctx context.Context) ([]model.ShoppingItem, error)
	Save(ctx context.Context, items []model.ShoppingItem) error
}

// Service holds the shopping list in memory and writes the whole list back
// after every mutation. A failed write keeps the in-memory change.
type Service struct {
	store    Store
	haptics  feedback.Haptics
	recorder metrics.Recorder
	newID    func() string
	now      func() time.Time

	mu    sync.Mutex
	items []model.ShoppingItem

	saveMu sync.Mutex
}

type Option func(*Service)

func WithHaptics(h feedback.Haptics) Option {
	return func(s *Service) {
		if h != nil {
			s.haptics = h
		}
	}
}

func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDs(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		haptics:  feedback.Noop{},
		recorder: metrics.NoopRecorder{},
		newID:    uuid.NewString,
		now:      time.Now,
		items:    []model.ShoppingItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Load(ctx context.Context) error {
	items, err := s.store.Load(ctx)
	if err != nil {
		s.recorder.IncStorageFailure("load")
		slog.Error("Failed to load shopping list", logfields.Key(storage.ShoppingListKey), logfields.Error(err))
		return fmt.Errorf("load shopping list: %w", err)
	}
	valid := make([]model.ShoppingItem, 0, len(items))
	for _, item := range items {
		if verr := item.Validate(); verr != nil {
			slog.Warn("Skipping invalid shopping item", logfields.ItemID(item.ID), logfields.Error(verr))
			continue
		}
		valid = append(valid, item)
	}
	s.mu.Lock()
	s.items = valid
	s.mu.Unlock()
	slog.Debug("Loaded shopping list", logfields.Count(len(valid)))
	return nil
}

// Items returns the list in display order.
func (s *Service) Items() []model.ShoppingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.OrderShoppingList(s.items)
}

func (s *Service) Add(ctx context.Context, name string) (model.ShoppingItem, error) {
	item, ok := model.NewShoppingItem(s.newID(), name, s.now())
	if !ok {
		return model.ShoppingItem{}, ErrBlankName
	}

	s.mu.Lock()
	next := make([]model.ShoppingItem, 0, len(s.items)+1)
	next = append(next, item)
	next = append(next, s.items...)
	s.items = next
	s.mu.Unlock()

	s.recorder.IncShoppingMutation("add")
	slog.Info("Added shopping item", logfields.ItemID(item.ID))
	return item, s.persist(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	next, found := model.DeleteShoppingItem(s.items, id)
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	s.items = next
	s.mu.Unlock()

	go s.haptics.Impact()
	s.recorder.IncShoppingMutation("delete")
	slog.Info("Deleted shopping item", logfields.ItemID(id))
	return s.persist(ctx)
}

func (s *Service) ToggleComplete(ctx context.Context, id string) (model.ShoppingItem, error) {
	s.mu.Lock()
	next, item, found := model.ToggleShoppingItem(s.items, id, s.now())
	if !found {
		s.mu.Unlock()
		return model.ShoppingItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	s.items = next
	s.mu.Unlock()

	if item.IsCompleted() {
		go s.haptics.Success()
	} else {
		go s.haptics.Impact()
	}
	s.recorder.IncShoppingMutation("toggle")
	return item, s.persist(ctx)
}

// persist writes the current list. Writes are serialized so the last one
// always carries the newest list.
func (s *Service) persist(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.mu.Lock()
	items := make([]model.ShoppingItem, len(s.items))
	copy(items, s.items)
	s.mu.Unlock()
	if err := s.store.Save(ctx, items); err != nil {
		s.recorder.IncStorageFailure("save")
		slog.Error("Failed to save shopping list", logfields.Key(storage.ShoppingListKey), logfields.Count(len(items)), logfields.Error(err))
		return fmt.Errorf("save shopping list: %w", err)
	}
	return nil
}

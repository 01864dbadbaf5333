package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is a string-keyed blob store. Values are opaque to the
// repository; typed access goes through JSONStore.
type Repository interface {
	Get(ctx context.Context, key string) (Entry, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, filter EntryListFilter) ([]Entry, error)
}

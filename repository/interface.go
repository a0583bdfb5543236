package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written or was deleted
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the durable client-side storage the session is persisted in.
// Keys and values are plain strings, like browser local storage.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
